//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"time"

	"github.com/newsraven/newsbridge/translator"
)

// defaultRunTimeout bounds a run against a stalled upstream stream.
const defaultRunTimeout = 5 * time.Minute

// Options holds the options for the runner.
type Options struct {
	TranslatorFactory TranslatorFactory
	RunTimeout        time.Duration
}

// NewOptions creates a new options instance.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		TranslatorFactory: defaultTranslatorFactory,
		RunTimeout:        defaultRunTimeout,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures the options.
type Option func(*Options)

// TranslatorFactory creates the translator for one run.
type TranslatorFactory func(threadID, runID string) translator.Translator

// WithTranslatorFactory sets the translator factory.
func WithTranslatorFactory(factory TranslatorFactory) Option {
	return func(o *Options) {
		o.TranslatorFactory = factory
	}
}

// WithRunTimeout bounds one run end to end. Zero disables the bound.
func WithRunTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.RunTimeout = d
	}
}

// defaultTranslatorFactory is the default translator factory.
func defaultTranslatorFactory(threadID, runID string) translator.Translator {
	return translator.New(threadID, runID)
}
