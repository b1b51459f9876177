//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package runner drives one bridge run end to end: it forwards the adapted
// request to the backend, consumes the resulting event stream and emits
// translated AG-UI events on a channel.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/newsraven/newsbridge/adapter"
	"github.com/newsraven/newsbridge/upstream"
)

var tracer = otel.Tracer("newsbridge/runner")

// Runner executes bridge runs and emits AG-UI events.
type Runner interface {
	// Run starts processing one run request and returns a channel of AG-UI
	// events. The channel closes when the run finishes, fails, or the
	// context is cancelled.
	Run(ctx context.Context, input *adapter.RunAgentInput) (<-chan aguievents.Event, error)
}

// New creates a runner backed by the given upstream client.
func New(client *upstream.Client, opt ...Option) Runner {
	opts := NewOptions(opt...)
	return &runner{
		client:            client,
		translatorFactory: opts.TranslatorFactory,
		runTimeout:        opts.RunTimeout,
	}
}

// runner is the default implementation of the Runner.
type runner struct {
	client            *upstream.Client
	translatorFactory TranslatorFactory
	runTimeout        time.Duration
}

// Run starts processing one run request and returns a channel of AG-UI events.
func (r *runner) Run(ctx context.Context, input *adapter.RunAgentInput) (<-chan aguievents.Event, error) {
	if r.client == nil {
		return nil, errors.New("newsbridge: upstream client is nil")
	}
	if input == nil {
		return nil, errors.New("newsbridge: run input cannot be nil")
	}
	req := adapter.Adapt(input)
	events := make(chan aguievents.Event)
	go r.run(ctx, req, events)
	return events, nil
}

func (r *runner) run(parent context.Context, req *upstream.RunRequest, events chan<- aguievents.Event) {
	defer close(events)
	ctx := parent
	if r.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, r.runTimeout)
		defer cancel()
	}
	ctx, span := tracer.Start(ctx, "bridge.run", trace.WithAttributes(
		attribute.String("thread.id", req.ThreadID),
		attribute.String("run.id", req.RunID),
	))
	defer span.End()

	stream, err := r.client.Open(ctx, req)
	if err != nil {
		emit(parent, events, aguievents.NewRunErrorEvent(
			fmt.Sprintf("open run stream: %v", err), aguievents.WithRunID(req.RunID)))
		return
	}
	defer stream.Close()

	tr := r.translatorFactory(req.ThreadID, req.RunID)
	emitted := false
	for {
		event, err := stream.Next()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				if !emitted {
					// The backend answered with an empty stream; surface
					// a terminal error instead of closing silently.
					emit(parent, events, aguievents.NewRunErrorEvent(
						"run stream ended without events", aguievents.WithRunID(req.RunID)))
				}
			case parent.Err() != nil:
				// Downstream is gone; nobody is listening for an error.
			case errors.Is(ctx.Err(), context.DeadlineExceeded):
				emit(parent, events, aguievents.NewRunErrorEvent(
					fmt.Sprintf("run stream interrupted: %v", ctx.Err()), aguievents.WithRunID(req.RunID)))
			default:
				// Mid-stream failure: close with a terminal signal rather
				// than dropping the connection without one.
				emit(parent, events, aguievents.NewRunErrorEvent(
					fmt.Sprintf("run stream interrupted: %v", err), aguievents.WithRunID(req.RunID)))
			}
			return
		}
		for _, out := range tr.Translate(event) {
			if !emit(parent, events, out) {
				return
			}
			emitted = true
		}
		if tr.Done() {
			return
		}
	}
}

// emit forwards one event unless the consumer's context is gone.
func emit(ctx context.Context, events chan<- aguievents.Event, event aguievents.Event) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
