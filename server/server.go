// Package server is the console's JSON API. It fronts one operator session held
// by the session manager and proxies clinic administration through the
// authenticated request wrapper.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/calllogs"
	"github.com/suryanavv/ims/catalog"
	"github.com/suryanavv/ims/clinics"
	"github.com/suryanavv/ims/dashboard"
	"github.com/suryanavv/ims/internal/config"
	"github.com/suryanavv/ims/sessions"
	"github.com/suryanavv/ims/users"
)

// Session is the part of *auth.SessionManager the handlers use.
type Session interface {
	Login(ctx context.Context, email, password string) (*users.Profile, error)
	InitiateFederatedLogin(ctx context.Context, provider auth.Provider) (string, error)
	RefreshToken(ctx context.Context) string
	Logout(ctx context.Context)
	User(ctx context.Context) *users.Profile
	Snapshot(ctx context.Context) sessions.Snapshot
	TokenExpiry(ctx context.Context) (time.Time, bool)
	TokenExpired(ctx context.Context) bool
	LaunchFederatedService(ctx context.Context, serviceName string) error
}

var _ Session = (*auth.SessionManager)(nil)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the collaborators the server is built from.
type Dependencies struct {
	Config    config.Config
	Session   Session
	Clinics   clinics.Repo
	Dashboard dashboard.Repo
	CallLogs  calllogs.Repo
	Opener    auth.URLOpener
	Gatherer  prometheus.Gatherer // nil disables /metrics
	Checks    map[string]HealthCheck
}

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	router    chi.Router
	config    config.Config
	session   Session
	clinics   clinics.Repo
	dashboard dashboard.Repo
	callLogs  calllogs.Repo
	launcher  *catalog.Launcher
	gatherer  prometheus.Gatherer
	checks    map[string]HealthCheck
}

func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("[server.New] config is required")
	}
	if deps.Session == nil {
		return nil, errors.New("[server.New] session is required")
	}
	if deps.Clinics == nil || deps.Dashboard == nil || deps.CallLogs == nil {
		return nil, errors.New("[server.New] domain repos are required")
	}
	opener := deps.Opener
	if opener == nil {
		opener = auth.BrowserOpener{}
	}

	s := &Server{
		env:       deps.Config.GetEnv(),
		router:    chi.NewRouter(),
		config:    deps.Config,
		session:   deps.Session,
		clinics:   deps.Clinics,
		dashboard: deps.Dashboard,
		callLogs:  deps.CallLogs,
		launcher:  catalog.NewLauncher(deps.Session, opener),
		gatherer:  deps.Gatherer,
		checks:    deps.Checks,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	_ = chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		logRoute(method, strings.TrimSuffix(route, "/*"))
		return nil
	})
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Debug().Msgf("[%s%s%s] %s", color, paddedMethod, ResetColor, path)
}
