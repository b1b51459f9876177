//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package identifier mints the correlation identifiers the bridge assigns
// to messages and tool calls during a run. Tokens only need to be unique
// within one process lifetime; they are not secrets.
package identifier

import (
	"strings"

	"github.com/google/uuid"
)

// tokenLen is the number of hex characters kept from the UUID.
const tokenLen = 12

func newID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:tokenLen]
}

// NewMessageID returns an identifier for one streamed message.
func NewMessageID() string { return newID("msg") }

// NewToolCallID returns an identifier for one tool invocation.
func NewToolCallID() string { return newID("tool") }

// NewRunID returns an identifier for a run whose request carried none.
func NewRunID() string { return newID("run") }
