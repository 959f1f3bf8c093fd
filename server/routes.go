package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/suryanavv/ims/users"
)

func (s *Server) initRoutes() {
	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(s.RecoverMiddleware)
	r.Use(s.FrameSecurityMiddleware)
	r.Use(s.CorsMiddleware)

	r.Get(RouteHealth, s.HealthHandler())
	if s.gatherer != nil {
		r.Method(http.MethodGet, RouteMetrics, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// SESSION
	r.Get(RouteSession, s.SessionHandler())
	r.Post(RouteSessionLogin, s.LoginHandler())
	r.Get(RouteSessionFederated, s.FederatedLoginHandler())
	r.Post(RouteSessionRefresh, s.RefreshHandler())
	r.Post(RouteSessionLogout, s.LogoutHandler())

	r.Group(func(r chi.Router) {
		r.Use(s.RequireSession)

		r.Get(RouteServices, s.ServicesHandler())
		r.Post(RouteServiceLaunch, s.LaunchServiceHandler())
		r.Post(RouteSSO, s.SSOHandler())
		r.Get(RouteUserServices, s.UserServicesHandler())

		// SUPERADMIN
		r.Group(func(r chi.Router) {
			r.Use(s.RequireRole(users.RoleSuperAdmin))

			r.Get(RouteClinics, s.ListClinicsHandler())
			r.Post(RouteClinics, s.CreateClinicHandler())
			r.Get(RouteClinic, s.GetClinicHandler())
			r.Put(RouteClinic, s.UpdateClinicHandler())
			r.Delete(RouteClinic, s.DeleteClinicHandler())
			r.Post(RouteResendOnboarding, s.ResendOnboardingHandler())

			r.Get(RouteAnalytics, s.AnalyticsHandler())

			r.Get(RouteCallLogClinics, s.CallLogClinicsHandler())
			r.Get(RouteCallLogs, s.CallLogsHandler())
			r.Get(RouteCallLogTranscript, s.TranscriptHandler())
		})
	})
}
