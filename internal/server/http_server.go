package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// httpServer is the listener surface Server drives; tests swap in stubs.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

type netHTTPServer struct {
	srv *http.Server
}

func (s netHTTPServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
func (s netHTTPServer) Handler() http.Handler              { return s.srv.Handler }

// newAPIServer serves the public API on port. Write timeout leaves room for
// a coverage expansion that runs up to the request timeout.
func newAPIServer(port string, handler http.Handler) netHTTPServer {
	return netHTTPServer{srv: &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

// newMetricsServer exposes the Prometheus handler at /metrics on its own port.
func newMetricsServer(port string, metricsHandler http.Handler) netHTTPServer {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	return netHTTPServer{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: readTimeout,
	}}
}
