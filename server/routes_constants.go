package server

// Route path constants
const (
	// Session
	RouteSession          = "/api/session"
	RouteSessionLogin     = "/api/session/login"
	RouteSessionFederated = "/api/session/federated/{provider}"
	RouteSessionRefresh   = "/api/session/refresh"
	RouteSessionLogout    = "/api/session/logout"

	// Service catalog and SSO
	RouteServices      = "/api/services"
	RouteServiceLaunch = "/api/services/{id}/launch"
	RouteSSO           = "/api/sso/{service}"

	// Clinic administration (superadmin)
	RouteClinics          = "/api/clinics"
	RouteClinic           = "/api/clinics/{id}"
	RouteResendOnboarding = "/api/users/{id}/resend-onboarding"

	// Dashboard
	RouteAnalytics    = "/api/dashboard/analytics"
	RouteUserServices = "/api/dashboard/user-services"

	// Call logs (superadmin)
	RouteCallLogClinics    = "/api/call-logs/clinics"
	RouteCallLogs          = "/api/call-logs/clinics/{phone}/logs"
	RouteCallLogTranscript = "/api/call-logs/clinics/{phone}/transcripts/{callID}"

	// Operations
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
