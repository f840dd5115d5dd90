package httpclient_test

import (
	"net/http"
	"testing"

	"github.com/andyle182810/triplewhale/httpclient"
	"github.com/andyle182810/triplewhale/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestWithMetrics_CountsRequestsByStatus(t *testing.T) {
	t.Parallel()

	server := testutil.NewRecordingServer(t, http.StatusTeapot, `{}`)

	metrics := httpclient.NewMetrics("test")
	require.NoError(t, metrics.Register(prometheus.NewRegistry()))

	client, err := httpclient.New(server.URL,
		httpclient.WithMetrics(metrics),
		httpclient.WithServiceName("svc"),
	)
	require.NoError(t, err)

	_, err = client.Post(t.Context(), "/count", map[string]string{})
	require.ErrorIs(t, err, httpclient.ErrServiceError)

	counter := metrics.RequestCount().WithLabelValues("svc", "418", http.MethodPost, "/count")
	require.InDelta(t, 1, promtestutil.ToFloat64(counter), 0)
}

func TestMetrics_RegisterTwiceReusesExistingCollectors(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	first := httpclient.NewMetrics("dup")
	require.NoError(t, first.Register(registry))

	second := httpclient.NewMetrics("dup")
	require.NoError(t, second.Register(registry))

	require.Same(t, first.RequestCount(), second.RequestCount())
}

func TestMetrics_RegisterFailsWhenNameTakenByAnotherType(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{ //nolint:exhaustruct
		Namespace: "clash",
		Subsystem: httpclient.MetricsSubsystem,
		Name:      "request_count",
		Help:      "Number of requests sent.",
	}, []string{
		httpclient.MetricsServiceLabel,
		httpclient.MetricsCodeLabel,
		httpclient.MetricsMethodLabel,
		httpclient.MetricsPathLabel,
	})
	require.NoError(t, registry.Register(gauge))

	err := httpclient.NewMetrics("clash").Register(registry)

	require.ErrorIs(t, err, httpclient.ErrMetricsConflict)
}
