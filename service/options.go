//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package service

// defaultPath is the default request path for the bridge service.
const defaultPath = "/"

// Options holds the options for a bridge transport implementation.
type Options struct {
	Path string // Path is the request URL path served by the handler.
}

// NewOptions creates a new options instance.
func NewOptions(opt ...Option) *Options {
	opts := &Options{}
	for _, o := range opt {
		o(opts)
	}
	if opts.Path == "" {
		opts.Path = defaultPath
	}
	return opts
}

// Option is a function that configures the options.
type Option func(*Options)

// WithPath sets the request path.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}
