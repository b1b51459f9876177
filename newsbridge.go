//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package newsbridge bridges a news-agent backend's run stream to AG-UI
// clients over SSE. It forwards run requests to the backend, translates
// the backend's event stream into AG-UI protocol events and re-emits them
// to the downstream client.
package newsbridge

import (
	"errors"
	"net/http"

	"github.com/newsraven/newsbridge/runner"
	"github.com/newsraven/newsbridge/service"
	"github.com/newsraven/newsbridge/upstream"
)

// Server exposes the bridge as an HTTP handler.
type Server struct {
	path    string
	handler http.Handler
}

// New creates a bridge server for the given backend run endpoint.
func New(upstreamURL string, opt ...Option) (*Server, error) {
	if upstreamURL == "" {
		return nil, errors.New("newsbridge: upstream URL must not be empty")
	}
	opts := newOptions(opt...)
	if opts.serviceFactory == nil {
		return nil, errors.New("newsbridge: serviceFactory must not be nil")
	}
	client := upstream.NewClient(upstreamURL, opts.connectTimeout)
	run := runner.New(client, opts.runnerOptions...)
	svc := opts.serviceFactory(run, service.WithPath(opts.path))
	return &Server{
		path:    opts.path,
		handler: svc.Handler(),
	}, nil
}

// Handler returns the http.Handler serving bridge requests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Path returns the route path for HTTP.
func (s *Server) Path() string {
	return s.path
}
