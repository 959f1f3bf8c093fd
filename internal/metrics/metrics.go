package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus metrics of the session layer and its consumers.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests       *prometheus.CounterVec
	Retries        prometheus.Counter
	Refreshes      *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	SSOLaunches    *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ims_client_requests_total",
			Help: "Authenticated backend requests by method and response status",
		}, []string{"method", "status"}),
		Retries: factory.NewCounter(prometheus.CounterOpts{
			Name: "ims_client_retries_total",
			Help: "Requests reissued after a 401 and a successful refresh",
		}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ims_session_refreshes_total",
			Help: "Access token refresh attempts by outcome",
		}, []string{"outcome"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ims_session_logins_total",
			Help: "Password logins by outcome",
		}, []string{"outcome"}),
		SSOLaunches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ims_sso_launches_total",
			Help: "SSO hand-offs by outcome",
		}, []string{"outcome"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ims_session_active",
			Help: "1 while the console holds an access token",
		}),
	}
}

func (m *Metrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) IncrementRetries() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}

func (m *Metrics) ObserveRefresh(ok bool) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(outcome(ok)).Inc()
}

func (m *Metrics) ObserveLogin(ok bool) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome(ok)).Inc()
}

func (m *Metrics) ObserveSSOLaunch(ok bool) {
	if m == nil {
		return
	}
	m.SSOLaunches.WithLabelValues(outcome(ok)).Inc()
}

// SetAuthenticated tracks whether an access token is currently held.
func (m *Metrics) SetAuthenticated(authenticated bool) {
	if m == nil {
		return
	}
	if authenticated {
		m.ActiveSessions.Set(1)
		return
	}
	m.ActiveSessions.Set(0)
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
