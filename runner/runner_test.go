//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsraven/newsbridge/adapter"
	"github.com/newsraven/newsbridge/upstream"
)

func collect(t *testing.T, ch <-chan aguievents.Event) []aguievents.Event {
	t.Helper()
	var events []aguievents.Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			t.Fatal("timed out waiting for events")
		}
	}
}

func streamHandler(frames []string, received *upstream.RunRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if received != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, received)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frame := range frames {
			_, _ = io.WriteString(w, "data: "+frame+"\n\n")
			flusher.Flush()
		}
	}
}

func TestRunNilInput(t *testing.T) {
	r := New(upstream.NewClient("http://127.0.0.1:0", 0))
	_, err := r.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRunNilClient(t *testing.T) {
	r := New(nil)
	_, err := r.Run(context.Background(), &adapter.RunAgentInput{})
	assert.Error(t, err)
}

func TestRunEndToEnd(t *testing.T) {
	var received upstream.RunRequest
	ts := httptest.NewServer(streamHandler([]string{
		`{"type":"run-started"}`,
		`{"type":"message-start","data":{"role":"assistant"}}`,
		`{"type":"message-content","data":{"delta":"AI 반도체 시장은 "}}`,
		`{"type":"message-content","data":{"delta":"빠르게 성장하고 있습니다."}}`,
		`{"type":"message-end"}`,
		`{"type":"run-finished"}`,
	}, &received))
	defer ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{
		Messages: []adapter.Message{{Role: "user", Content: "AI 반도체 동향은?"}},
	})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 6)

	// The adapter filled in the identifiers the inbound request lacked.
	assert.Equal(t, "default-thread", received.ThreadID)
	assert.NotEmpty(t, received.RunID)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, "AI 반도체 동향은?", received.Messages[0].Content)

	assert.IsType(t, (*aguievents.RunStartedEvent)(nil), events[0])
	start, ok := events[1].(*aguievents.TextMessageStartEvent)
	require.True(t, ok)
	messageID := start.MessageID

	contentA, ok := events[2].(*aguievents.TextMessageContentEvent)
	require.True(t, ok)
	assert.Equal(t, messageID, contentA.MessageID)
	assert.Equal(t, "AI 반도체 시장은 ", contentA.Delta)

	contentB, ok := events[3].(*aguievents.TextMessageContentEvent)
	require.True(t, ok)
	assert.Equal(t, messageID, contentB.MessageID)

	end, ok := events[4].(*aguievents.TextMessageEndEvent)
	require.True(t, ok)
	assert.Equal(t, messageID, end.MessageID)

	assert.IsType(t, (*aguievents.RunFinishedEvent)(nil), events[5])
}

func TestRunEarlyFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{RunID: "run-1"})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	runErr, ok := events[0].(*aguievents.RunErrorEvent)
	require.True(t, ok)
	assert.Contains(t, runErr.Message, "open run stream")
	assert.Equal(t, "run-1", runErr.RunID())
}

func TestRunBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	runErr, ok := events[0].(*aguievents.RunErrorEvent)
	require.True(t, ok)
	assert.Contains(t, runErr.Message, "502")
}

func TestRunEmptyStream(t *testing.T) {
	ts := httptest.NewServer(streamHandler(nil, nil))
	defer ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	assert.IsType(t, (*aguievents.RunErrorEvent)(nil), events[0])
}

func TestRunMidStreamInterruption(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = io.WriteString(w, "data: {\"type\":\"run-started\"}\n\n")
		_, _ = io.WriteString(w, "data: {\"type\":\"message-start\"}\n\n")
		flusher.Flush()
		panic(http.ErrAbortHandler)
	}))
	defer ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{RunID: "run-1"})
	require.NoError(t, err)

	events := collect(t, ch)
	require.GreaterOrEqual(t, len(events), 3)
	runErr, ok := events[len(events)-1].(*aguievents.RunErrorEvent)
	require.True(t, ok, "an interrupted stream must end with a terminal error")
	assert.Contains(t, runErr.Message, "run stream interrupted")
	assert.Equal(t, "run-1", runErr.RunID())
}

func TestRunStopsAfterRunFinished(t *testing.T) {
	ts := httptest.NewServer(streamHandler([]string{
		`{"type":"run-started"}`,
		`{"type":"run-finished"}`,
		`{"type":"message-start"}`,
	}, nil))
	defer ts.Close()

	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(context.Background(), &adapter.RunAgentInput{})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 2)
	assert.IsType(t, (*aguievents.RunFinishedEvent)(nil), events[1])
}

func TestRunConsumerCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = io.WriteString(w, "data: {\"type\":\"run-started\"}\n\n")
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := New(upstream.NewClient(ts.URL, time.Second))
	ch, err := r.Run(ctx, &adapter.RunAgentInput{})
	require.NoError(t, err)

	ev, ok := <-ch
	require.True(t, ok)
	assert.IsType(t, (*aguievents.RunStartedEvent)(nil), ev)

	cancel()

	// The channel closes without a terminal error; the consumer is gone.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("run did not stop after cancellation")
		}
	}
}
