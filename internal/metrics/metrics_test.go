package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/suryanavv/ims/internal/metrics"
)

func TestMetricsRecord(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveRequest("GET", 200)
	m.ObserveRequest("GET", 200)
	m.ObserveRequest("GET", 401)
	m.IncrementRetries()
	m.ObserveRefresh(true)
	m.ObserveRefresh(false)
	m.SetAuthenticated(true)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "401")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Retries))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.OutcomeFailure)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveRequest("GET", 200)
		m.IncrementRetries()
		m.ObserveRefresh(true)
		m.ObserveLogin(false)
		m.ObserveSSOLaunch(true)
		m.SetAuthenticated(false)
	})
}
