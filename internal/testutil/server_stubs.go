package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
)

// StubHTTPServer satisfies the server's listener interface without binding a
// port. Call counters are atomic because ListenAndServe runs on a goroutine.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error

	listens   atomic.Int32
	shutdowns atomic.Int32
}

// NewErrHTTPServer returns a stub whose ListenAndServe fails immediately.
func NewErrHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{AddrVal: ":0", ListenErr: errors.New("listen failure")}
}

// NewClosedHTTPServer returns a stub that reports a clean close from ListenAndServe.
func NewClosedHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{AddrVal: ":0", ListenErr: http.ErrServerClosed}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(context.Context) error {
	s.shutdowns.Add(1)
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string { return s.AddrVal }

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// Listens reports how many times ListenAndServe ran.
func (s *StubHTTPServer) Listens() int { return int(s.listens.Load()) }

// Shutdowns reports how many times Shutdown ran.
func (s *StubHTTPServer) Shutdowns() int { return int(s.shutdowns.Load()) }

// BlockingHTTPServer holds Shutdown until Unblock closes or ctx ends, for
// exercising the shutdown deadline.
type BlockingHTTPServer struct {
	StubHTTPServer
	Unblock chan struct{}
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.shutdowns.Add(1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}
