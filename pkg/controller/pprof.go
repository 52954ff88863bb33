package controller

import (
	"net/http"
	"net/http/pprof"
	"strings"
)

// PprofHandler serves the net/http/pprof endpoints under prefix, which must
// end with a slash (e.g. "/debug/pprof/"). Named profiles such as heap or
// goroutine are served by the index handler.
func PprofHandler(prefix string) http.Handler {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	mux := http.NewServeMux()
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		// pprof.Index resolves profile names relative to /debug/pprof/
		name := strings.TrimPrefix(r.URL.Path, prefix)
		if name == "" {
			pprof.Index(w, r)

			return
		}
		pprof.Handler(name).ServeHTTP(w, r)
	})
	mux.HandleFunc(prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"profile", pprof.Profile)
	mux.HandleFunc(prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"trace", pprof.Trace)

	return mux
}
