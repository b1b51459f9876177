//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package sse provides the SSE transport for the bridge.
package sse

import (
	"net/http"

	aguisse "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/encoding/sse"

	"github.com/newsraven/newsbridge/adapter"
	"github.com/newsraven/newsbridge/log"
	"github.com/newsraven/newsbridge/runner"
	"github.com/newsraven/newsbridge/service"
)

// sse is the SSE service implementation.
type sse struct {
	path    string
	writer  *aguisse.SSEWriter
	runner  runner.Runner
	handler http.Handler
}

// New creates a new SSE service.
func New(runner runner.Runner, opt ...service.Option) service.Service {
	opts := service.NewOptions(opt...)
	s := &sse{
		path:   opts.Path,
		runner: runner,
		writer: aguisse.NewSSEWriter(),
	}
	h := http.NewServeMux()
	h.HandleFunc(s.path, s.handle)
	s.handler = h
	return s
}

// Handler returns an http.Handler that exposes the bridge's SSE endpoint.
func (s *sse) Handler() http.Handler {
	return s.handler
}

// handle handles one run request.
func (s *sse) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodPost)
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.runner == nil {
		http.Error(w, "runner not configured", http.StatusInternalServerError)
		return
	}
	input, err := adapter.FromReader(r.Body)
	if err != nil {
		log.Debugf("rejecting run request: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	eventsCh, err := s.runner.Run(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	for event := range eventsCh {
		if err := s.writer.WriteEvent(r.Context(), w, event); err != nil {
			return
		}
	}
}
