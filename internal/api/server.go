// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the URL normalization service.
package api

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"urlnorm/internal/api/handler/v1handler"
	"urlnorm/internal/config"
	"urlnorm/pkg/controller"
	"urlnorm/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI document for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// MetricsNamespace prefixes every Prometheus metric registered by the server.
const MetricsNamespace = "urlnorm"

// PprofPrefix is where profiling endpoints are mounted when enabled.
const PprofPrefix = "/debug/pprof/"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults, except RequestTimeout
// which disables the global request timeout.
type Options struct {
	// V1 configures the v1 endpoints.
	V1 v1handler.Options

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// EnablePprof mounts the profiling endpoints under PprofPrefix.
	EnablePprof bool
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		V1: v1handler.Options{MaxBodyBytes: cfg.HTTP.MaxBodyBytes},

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		EnablePprof:       cfg.HTTP.EnablePprof,
	}
}

type Deps struct {
	v1handler.Deps

	// Registry collects and serves every Prometheus metric of the process,
	// including the ones bridged from OpenTelemetry by NewMeterProvider.
	Registry *prometheus.Registry
}

// NewMeterProvider returns an OpenTelemetry meter provider whose instruments
// are exported through reg.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// NewHandler builds the routed and instrumented handler served by NewServer.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 document and Swagger UI
// - v1 API routes and a health check
// - pprof endpoints for profiling, when enabled
// It wraps the mux with request metrics, CORS and logging middlewares and
// applies a request timeout.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	if deps.Registry == nil {
		return nil, errors.New("a prometheus registry is required")
	}

	httpMetrics, err := metrics.NewHTTP(deps.Registry, MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}

	mux := http.NewServeMux()

	// prometheus metrics server
	if opts.MetricsPath != "" {
		mux.Handle("GET "+opts.MetricsPath, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{
			Registry: deps.Registry,
		}))
	}

	// v1 specs file
	mux.HandleFunc("GET /specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle("GET /v1/docs/", v5emb.New(
		"URL Normalization Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))
	// v1 api
	v1handler.New(deps.Deps, opts.V1).Register(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// pprof
	if opts.EnablePprof {
		mux.Handle(PprofPrefix, controller.PprofHandler(PprofPrefix))
	}

	// metrics need the matched route pattern, so they wrap the mux directly
	handler := controller.WithMetrics(mux, httpMetrics)

	// cors
	handler = controller.WithCORS(handler)

	// logger
	handler = controller.WithLogger(handler)

	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"code":"TIMEOUT","message":"request timed out"}`)
	}

	return handler, nil
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
