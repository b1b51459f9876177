//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package adapter converts inbound AG-UI run requests into the request
// shape the news-agent backend accepts.
package adapter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/newsraven/newsbridge/internal/identifier"
	"github.com/newsraven/newsbridge/upstream"
)

// defaultThreadID is used when the inbound request carries no thread id.
const defaultThreadID = "default-thread"

// Message is one inbound conversation message. Content may be plain text
// or any JSON value; structured content is serialized before it is sent
// upstream.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Tool is one inbound tool descriptor. Only the name travels upstream;
// arguments originate from the agent during the run.
type Tool struct {
	Name string `json:"name"`
}

// RunAgentInput represents the parameters for an AG-UI run request.
type RunAgentInput struct {
	// ThreadID is the ID of the conversation thread.
	ThreadID string `json:"threadId"`
	// RunID is the ID of the current run.
	RunID string `json:"runId"`
	// Messages is the list of messages in the conversation.
	Messages []Message `json:"messages"`
	// State is the session state of the agent.
	State map[string]any `json:"state"`
	// Tools is the list of tools available to the agent.
	Tools []Tool `json:"tools"`
	// ForwardedProps is the custom properties forwarded to the agent.
	ForwardedProps map[string]any `json:"forwardedProps"`
}

// FromReader parses a run request payload from a reader. A payload that
// cannot be decoded rejects the whole request before any stream is opened.
func FromReader(r io.Reader) (*RunAgentInput, error) {
	var input RunAgentInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

// Adapt builds the upstream request for one run. The result is immutable
// for the run's lifetime.
func Adapt(input *RunAgentInput) *upstream.RunRequest {
	req := &upstream.RunRequest{
		ThreadID: input.ThreadID,
		RunID:    input.RunID,
		State:    input.State,
		Messages: make([]upstream.Message, 0, len(input.Messages)),
		Tools:    make([]upstream.Tool, 0, len(input.Tools)),
	}
	if req.ThreadID == "" {
		req.ThreadID = defaultThreadID
	}
	if req.RunID == "" {
		req.RunID = identifier.NewRunID()
	}
	if req.State == nil {
		req.State = map[string]any{}
	}
	for _, m := range input.Messages {
		req.Messages = append(req.Messages, upstream.Message{
			Role:    m.Role,
			Content: textContent(m.Content),
		})
	}
	for _, tool := range input.Tools {
		req.Tools = append(req.Tools, upstream.Tool{
			Name:  tool.Name,
			Input: map[string]any{},
		})
	}
	return req
}

// textContent renders message content as text. The backend accepts only
// textual content, so structured values are JSON-serialized.
func textContent(content any) string {
	switch v := content.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
