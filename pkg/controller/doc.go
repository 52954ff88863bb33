// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithMetrics: Records Prometheus latency and in-flight metrics per route.
//
// Provided helpers:
//   - PprofHandler: Serves net/http/pprof handlers under a path prefix.
package controller
