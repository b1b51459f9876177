//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package upstream speaks the news-agent backend's run protocol: it opens
// run streams over HTTP and decodes the SSE frames the backend emits.
package upstream

import "encoding/json"

// Event kinds the backend is known to emit. The vocabulary is open; kinds
// not listed here are forwarded to the client as custom events rather than
// rejected.
const (
	KindRunStarted      = "run-started"
	KindMessageStart    = "message-start"
	KindMessageContent  = "message-content"
	KindMessageEnd      = "message-end"
	KindToolCallStart   = "tool-call-start"
	KindToolCallContent = "tool-call-content"
	KindToolCallEnd     = "tool-call-end"
	KindStateDelta      = "state-delta"
	KindRunFinished     = "run-finished"
)

// Event is one decoded frame from the backend stream. Data is kept raw;
// each kind carries a different payload shape and the translator decodes
// only what it needs.
type Event struct {
	Type  string          `json:"type"`
	RunID string          `json:"runId,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Message is one conversation message forwarded to the backend. Content is
// always text; the adapter serializes structured content before it gets
// here.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool describes a tool available to the agent. Arguments never travel on
// the request path; they originate from the agent during the run.
type Tool struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// RunRequest is the request body the backend's run endpoint accepts.
type RunRequest struct {
	ThreadID string         `json:"threadId"`
	RunID    string         `json:"runId"`
	Messages []Message      `json:"messages"`
	State    map[string]any `json:"state"`
	Tools    []Tool         `json:"tools"`
}
