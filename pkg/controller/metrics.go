package controller

import (
	"net/http"
	"strconv"
	"time"

	"urlnorm/pkg/metrics"
)

// WithMetrics returns a middleware observing request latency and in-flight
// requests. It must wrap the ServeMux directly: the route label is read from
// the pattern the mux records on the request.
func WithMetrics(next http.Handler, m *metrics.HTTP) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
