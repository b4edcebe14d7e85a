package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNetHTTPServerListenAndServeReturnsAfterShutdown(t *testing.T) {
	s := newAPIServer("0", http.NewServeMux())
	s.srv.Addr = "127.0.0.1:0"
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	time.Sleep(50 * time.Millisecond)
	_ = s.Shutdown(context.Background())

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatalf("listen did not return after shutdown")
	}
}

func TestNewAPIServerAppliesTimeouts(t *testing.T) {
	handler := http.NewServeMux()
	s := newAPIServer("8080", handler)

	if s.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", s.Addr())
	}
	if s.Handler() != handler {
		t.Fatalf("expected handler passthrough")
	}
	if s.srv.WriteTimeout != writeTimeout || s.srv.ReadTimeout != readTimeout || s.srv.IdleTimeout != idleTimeout {
		t.Fatalf("unexpected timeouts %+v", s.srv)
	}
	if writeTimeout <= requestTimeout {
		t.Fatalf("write timeout %s must exceed request timeout %s", writeTimeout, requestTimeout)
	}
}

func TestNewMetricsServerServesOnlyMetricsPath(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	s := newMetricsServer("9090", metricsHandler)
	if s.Addr() != ":9090" {
		t.Fatalf("expected :9090, got %s", s.Addr())
	}

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "# metrics" {
		t.Fatalf("expected metrics body, got %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/scoreboard", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-metrics path, got %d", rr.Code)
	}
}
