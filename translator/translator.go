//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package translator maps backend run events onto AG-UI protocol events.
package translator

import (
	"encoding/json"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/newsraven/newsbridge/internal/identifier"
	"github.com/newsraven/newsbridge/log"
	"github.com/newsraven/newsbridge/upstream"
)

// Defaults applied when the backend omits a field.
const (
	defaultRole     = "assistant"
	defaultToolName = "unknown"
)

// progressEventName tags tool progress payloads forwarded as custom events.
const progressEventName = "tool-call-progress"

// Translator translates backend events to AG-UI events for one run.
type Translator interface {
	// Translate translates one backend event into zero or more AG-UI events.
	Translate(event upstream.Event) []aguievents.Event
	// Done reports whether the run reached a terminal event. After that,
	// Translate emits nothing.
	Done() bool
}

// New creates a translator for one run. A translator owns the run's
// correlation state and must never be shared across runs.
func New(threadID, runID string) Translator {
	return &translator{threadID: threadID, runID: runID}
}

// Run lifecycle states.
const (
	stateInit = iota
	stateRunning
	stateTerminal
)

// translator is the default implementation of the Translator.
type translator struct {
	threadID string
	runID    string
	state    int

	// Correlation ids for the entities currently streaming. Each is set
	// only by its start event and referenced by every later content/end
	// event until the next start overwrites it.
	currentMessageID  string
	currentToolCallID string
}

// Translate translates one backend event into zero or more AG-UI events.
func (t *translator) Translate(event upstream.Event) []aguievents.Event {
	if t.state == stateTerminal {
		return nil
	}
	t.state = stateRunning
	switch event.Type {
	case upstream.KindRunStarted:
		if event.RunID != "" && event.RunID != t.runID {
			log.Debugf("backend reported run %s, bridge run is %s", event.RunID, t.runID)
		}
		return []aguievents.Event{aguievents.NewRunStartedEvent(t.threadID, t.runID)}
	case upstream.KindMessageStart:
		return t.messageStart(event.Data)
	case upstream.KindMessageContent:
		return t.messageContent(event.Data)
	case upstream.KindMessageEnd:
		if t.currentMessageID == "" {
			return nil
		}
		return []aguievents.Event{aguievents.NewTextMessageEndEvent(t.currentMessageID)}
	case upstream.KindToolCallStart:
		return t.toolCallStart(event.Data)
	case upstream.KindToolCallContent:
		// Progress payloads are free-form text or partial objects.
		// Appending them to the client's argument buffer would corrupt
		// it, so they travel as a custom event, never TOOL_CALL_ARGS.
		return []aguievents.Event{aguievents.NewCustomEvent(progressEventName,
			aguievents.WithValue(rawValue(event.Data)))}
	case upstream.KindToolCallEnd:
		if t.currentToolCallID == "" {
			return nil
		}
		// The result payload is omitted; clients fetch results out of band.
		return []aguievents.Event{aguievents.NewToolCallEndEvent(t.currentToolCallID)}
	case upstream.KindStateDelta:
		return []aguievents.Event{aguievents.NewStateDeltaEvent(patchOperations(event.Data))}
	case upstream.KindRunFinished:
		t.state = stateTerminal
		return []aguievents.Event{aguievents.NewRunFinishedEvent(t.threadID, t.runID)}
	default:
		return []aguievents.Event{aguievents.NewCustomEvent(event.Type,
			aguievents.WithValue(rawValue(event.Data)))}
	}
}

// Done reports whether the run reached a terminal event.
func (t *translator) Done() bool {
	return t.state == stateTerminal
}

func (t *translator) messageStart(data json.RawMessage) []aguievents.Event {
	var payload struct {
		Role string `json:"role"`
	}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &payload)
	}
	role := payload.Role
	if role == "" {
		role = defaultRole
	}
	t.currentMessageID = identifier.NewMessageID()
	return []aguievents.Event{aguievents.NewTextMessageStartEvent(t.currentMessageID,
		aguievents.WithRole(role))}
}

func (t *translator) messageContent(data json.RawMessage) []aguievents.Event {
	if t.currentMessageID == "" {
		return nil
	}
	var payload struct {
		Delta   string `json:"delta"`
		Content string `json:"content"`
	}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &payload)
	}
	delta := payload.Delta
	if delta == "" {
		delta = payload.Content
	}
	if delta == "" {
		return nil
	}
	return []aguievents.Event{aguievents.NewTextMessageContentEvent(t.currentMessageID, delta)}
}

func (t *translator) toolCallStart(data json.RawMessage) []aguievents.Event {
	fields := map[string]any{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &fields)
	}
	name := defaultToolName
	for _, key := range []string{"toolName", "name"} {
		if v, ok := fields[key].(string); ok && v != "" {
			name = v
			break
		}
	}
	delete(fields, "toolName")
	delete(fields, "name")

	t.currentToolCallID = identifier.NewToolCallID()
	var opts []aguievents.ToolCallStartOption
	if t.currentMessageID != "" {
		opts = append(opts, aguievents.WithParentMessageID(t.currentMessageID))
	}
	events := []aguievents.Event{aguievents.NewToolCallStartEvent(t.currentToolCallID, name, opts...)}

	// Seed arguments: whatever the start payload carried besides the tool
	// name, JSON-encoded as one complete fragment.
	if len(fields) > 0 {
		if args, err := json.Marshal(fields); err == nil {
			events = append(events, aguievents.NewToolCallArgsEvent(t.currentToolCallID, string(args)))
		}
	}
	return events
}

// rawValue decodes a payload for transport inside a custom event. Payloads
// that are not valid JSON ride along as raw text.
func rawValue(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

// patchOperations interprets a state-delta payload as JSON Patch
// operations. Anything else becomes an empty delta.
func patchOperations(data json.RawMessage) []aguievents.JSONPatchOperation {
	if len(data) == 0 {
		return []aguievents.JSONPatchOperation{}
	}
	var ops []aguievents.JSONPatchOperation
	if err := json.Unmarshal(data, &ops); err != nil {
		return []aguievents.JSONPatchOperation{}
	}
	return ops
}
