package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricsSubsystem    = "api_outbound"
	MetricsServiceLabel = "service"
	MetricsCodeLabel    = "code"
	MetricsMethodLabel  = "method"
	MetricsPathLabel    = "path"
)

var metricsLabels = []string{
	MetricsServiceLabel,
	MetricsCodeLabel,
	MetricsMethodLabel,
	MetricsPathLabel,
}

// Metrics counts and times outbound requests. Code is "0" when the transport failed.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{ //nolint:exhaustruct
				Namespace: namespace,
				Subsystem: MetricsSubsystem,
				Name:      "request_count",
				Help:      "Number of requests sent.",
			},
			metricsLabels,
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{ //nolint:exhaustruct
				Namespace: namespace,
				Subsystem: MetricsSubsystem,
				Name:      "request_duration",
				Help:      "Request duration in seconds.",
				Buckets:   []float64{0.1, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			metricsLabels,
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	if err := reg.Register(m.requestCount); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}

		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return fmt.Errorf("%w: %T", ErrMetricsConflict, already.ExistingCollector)
		}

		m.requestCount = existing
	}

	if err := reg.Register(m.requestDuration); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}

		existing, ok := already.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return fmt.Errorf("%w: %T", ErrMetricsConflict, already.ExistingCollector)
		}

		m.requestDuration = existing
	}

	return nil
}

func (m *Metrics) RequestCount() *prometheus.CounterVec {
	return m.requestCount
}

func (m *Metrics) wrap(service string, next http.RoundTripper) http.RoundTripper {
	return &metricsRoundTripper{
		metrics: m,
		service: service,
		next:    next,
	}
}

type metricsRoundTripper struct {
	metrics *Metrics
	service string
	next    http.RoundTripper
}

func (rt *metricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	elapsed := time.Since(start)

	code := 0
	if resp != nil {
		code = resp.StatusCode
	}

	labels := prometheus.Labels{
		MetricsServiceLabel: rt.service,
		MetricsCodeLabel:    strconv.Itoa(code),
		MetricsMethodLabel:  req.Method,
		MetricsPathLabel:    req.URL.Path,
	}

	rt.metrics.requestCount.With(labels).Inc()
	rt.metrics.requestDuration.With(labels).Observe(elapsed.Seconds())

	return resp, err //nolint:wrapcheck
}
