// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// Compile-time check.
var _ suture.Service = (*HTTPServerService)(nil)

// fakeServer is a test double for HTTPServer.
type fakeServer struct {
	listenErr     error
	shutdownErr   error
	started       chan struct{}
	stop          chan struct{}
	shutdownCalls atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.started <- struct{}{}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdownCalls.Add(1)
	close(f.stop)
	return f.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newFakeServer()
	svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if got := srv.shutdownCalls.Load(); got != 1 {
		t.Errorf("Shutdown calls = %d, want 1", got)
	}
}

func TestHTTPServerServiceListenError(t *testing.T) {
	t.Parallel()

	srv := newFakeServer()
	srv.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Fatalf("Serve() error = %v, want wrapped listen error", err)
	}
	if srv.shutdownCalls.Load() != 0 {
		t.Error("Shutdown should not be called after a listen failure")
	}
}

func TestHTTPServerServiceShutdownError(t *testing.T) {
	t.Parallel()

	srv := newFakeServer()
	srv.shutdownErr = errors.New("connections did not drain")
	svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	<-srv.started
	cancel()

	if err := <-done; !errors.Is(err, srv.shutdownErr) {
		t.Errorf("Serve() error = %v, want shutdown error", err)
	}
}

func TestNewHTTPServerServiceDefaults(t *testing.T) {
	t.Parallel()

	svc := NewHTTPServerService(newFakeServer(), 0, zerolog.Nop())
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}
