package main

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/calllogs"
	"github.com/suryanavv/ims/client"
	"github.com/suryanavv/ims/clinics"
	"github.com/suryanavv/ims/dashboard"
	"github.com/suryanavv/ims/internal/config"
	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/internal/metrics"
	"github.com/suryanavv/ims/internal/transport"
	"github.com/suryanavv/ims/server"
	"github.com/suryanavv/ims/sessions"
	"github.com/suryanavv/ims/sessions/filestore"
	"github.com/suryanavv/ims/sessions/redisstore"
)

// app is the wired console: one session manager and one request wrapper
// sharing an HTTP client, behind the JSON server.
type app struct {
	handler http.Handler
	session *auth.SessionManager
	closers []func() error
}

func newApp(ctx context.Context, c config.Config) (*app, error) {
	a := &app{}

	durable, closeStore, err := newDurableStore(ctx, c, c.GetDataFolder())
	if err != nil {
		return nil, err
	}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	httpClient, err := transport.NewHTTPClient(c.GetRequestTimeout())
	if err != nil {
		a.Close()
		return nil, err
	}

	stores := auth.Stores{Volatile: sessions.NewInMemoryStore(), Durable: durable}
	a.session, err = auth.NewSessionManager(c.GetAPIBaseURL(), stores,
		auth.WithHTTPClient(httpClient),
		auth.WithMetrics(m),
		auth.WithCoalescedRefresh(c.GetCoalesceRefresh()),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	api, err := client.New(a.session.BaseURL(), a.session,
		client.WithHTTPClient(httpClient),
		client.WithMetrics(m),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	checks := map[string]server.HealthCheck{}
	if hc, ok := durable.(interface{ Health(context.Context) error }); ok {
		checks["profile_store"] = hc.Health
	}

	a.handler, err = server.New(server.Dependencies{
		Config:    c,
		Session:   a.session,
		Clinics:   clinics.NewService(api),
		Dashboard: dashboard.NewService(api),
		CallLogs:  calllogs.NewService(api),
		Opener:    auth.BrowserOpener{},
		Gatherer:  reg,
		Checks:    checks,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the stores. The session itself is kept so a restart can
// resume from the stored profile.
func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}
}

// newDurableStore opens the profile store PROFILE_STORE names. The returned
// close function may be nil.
func newDurableStore(ctx context.Context, c config.StoreConfig, folder string) (sessions.Store, func() error, error) {
	switch c.GetProfileStore() {
	case config.StoreFile:
		store, err := filestore.New(folder)
		if err != nil {
			return nil, nil, errors.Wrap(err, "[newDurableStore] file store")
		}
		log.Debug().Str("path", store.Path()).Msg("using file profile store")
		return store, nil, nil
	case config.StoreRedis:
		if c.GetRedisURL() == "" {
			return nil, nil, ierrors.ErrMissingRedisURL
		}
		store, err := redisstore.Dial(ctx, c.GetRedisURL(), c.GetRedisKeyPrefix())
		if err != nil {
			return nil, nil, errors.Wrap(err, "[newDurableStore] redis store")
		}
		return store, store.Close, nil
	case config.StoreMemory:
		return sessions.NewInMemoryStore(), nil, nil
	default:
		return nil, nil, ierrors.Wrapf(ierrors.ErrUnsupportedStore, "%q", c.GetProfileStore())
	}
}
