//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsraven/newsbridge/adapter"
	"github.com/newsraven/newsbridge/translator"
	"github.com/newsraven/newsbridge/upstream"
)

func TestDefaultOptions(t *testing.T) {
	opts := NewOptions()
	assert.NotNil(t, opts.TranslatorFactory)
	assert.Equal(t, defaultRunTimeout, opts.RunTimeout)

	tr := opts.TranslatorFactory("thread", "run")
	assert.NotNil(t, tr)
}

func TestWithTranslatorFactory(t *testing.T) {
	var gotThread, gotRun string
	opts := NewOptions(WithTranslatorFactory(func(threadID, runID string) translator.Translator {
		gotThread, gotRun = threadID, runID
		return translator.New(threadID, runID)
	}))
	opts.TranslatorFactory("thread-1", "run-1")
	assert.Equal(t, "thread-1", gotThread)
	assert.Equal(t, "run-1", gotRun)
}

func TestWithRunTimeout(t *testing.T) {
	opts := NewOptions(WithRunTimeout(time.Second))
	assert.Equal(t, time.Second, opts.RunTimeout)

	opts = NewOptions(WithRunTimeout(0))
	assert.Zero(t, opts.RunTimeout)
}

func TestRunTimeoutTerminatesStalledStream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = io.WriteString(w, "data: {\"type\":\"run-started\"}\n\n")
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second), WithRunTimeout(100*time.Millisecond))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{})
	require.NoError(t, err)

	events := collect(t, ch)
	require.NotEmpty(t, events)
	runErr, ok := events[len(events)-1].(*aguievents.RunErrorEvent)
	require.True(t, ok)
	assert.Contains(t, runErr.Message, "run stream interrupted")
}
