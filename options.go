//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package newsbridge

import (
	"time"

	"github.com/newsraven/newsbridge/runner"
	"github.com/newsraven/newsbridge/service"
	"github.com/newsraven/newsbridge/service/sse"
)

var (
	defaultPath           = "/agui"
	defaultConnectTimeout = 30 * time.Second
	defaultServiceFactory = sse.New
)

// options holds the options for the bridge server.
type options struct {
	path           string
	connectTimeout time.Duration
	serviceFactory ServiceFactory
	runnerOptions  []runner.Option
}

// newOptions creates a new options instance.
func newOptions(opt ...Option) *options {
	opts := &options{
		path:           defaultPath,
		connectTimeout: defaultConnectTimeout,
		serviceFactory: defaultServiceFactory,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures the options.
type Option func(*options)

// WithPath sets the path the bridge endpoint is served on.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithConnectTimeout bounds dialing the backend and waiting for its
// response headers. Zero disables the bound.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) {
		o.connectTimeout = d
	}
}

// ServiceFactory is a function that creates the bridge transport.
type ServiceFactory func(runner runner.Runner, opt ...service.Option) service.Service

// WithServiceFactory sets the service factory, sse.New by default.
func WithServiceFactory(f ServiceFactory) Option {
	return func(o *options) {
		o.serviceFactory = f
	}
}

// WithRunnerOptions sets the runner options.
func WithRunnerOptions(runnerOpts ...runner.Option) Option {
	return func(o *options) {
		o.runnerOptions = append(o.runnerOptions, runnerOpts...)
	}
}
