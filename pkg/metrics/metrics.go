// Package metrics holds the Prometheus collectors shared by the HTTP layer.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5} //nolint: gochecknoglobals

// HTTP groups the request-level collectors of the API server.
type HTTP struct {
	// RequestDuration observes handler latency by route pattern, method and status code.
	RequestDuration *prometheus.HistogramVec
	// InFlight counts requests currently being served.
	InFlight prometheus.Gauge
}

// NewHTTP creates the HTTP collectors under namespace and registers them on reg.
func NewHTTP(reg prometheus.Registerer, namespace string) (*HTTP, error) {
	m := &HTTP{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   DefaultBuckets,
		}, []string{"route", "method", "code"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests being served.",
		}),
	}

	for _, c := range []prometheus.Collector{m.RequestDuration, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register http collector: %w", err)
		}
	}

	return m, nil
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}
