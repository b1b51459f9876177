//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package httpserver hosts the bridge handler with CORS, a health check
// and graceful shutdown.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/newsraven/newsbridge/log"
)

// shutdownTimeout bounds draining in-flight streams on shutdown.
const shutdownTimeout = 10 * time.Second

// Server wraps http.Server with the bridge's routing and middleware.
type Server struct {
	srv *http.Server
}

// New mounts handler at path on a new router listening on addr.
func New(addr, path string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:    addr,
		Handler: Routes(path, handler),
	}}
}

// Routes builds the bridge's HTTP routing: a health endpoint plus the
// bridge handler behind permissive CORS for browser clients.
func Routes(path string, handler http.Handler) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.PathPrefix(path).Handler(handler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Length", "Content-Type"},
	})
	return c.Handler(router)
}

// Serve blocks until ctx is cancelled or the listener fails, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
