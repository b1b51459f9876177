//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package service defines the Service interface for bridge transports.
package service

import "net/http"

// Service represents one transport for the bridge's event stream.
// Different transports (SSE, WebSocket, etc.) return their own
// http.Handler, which can be mounted on an existing HTTP router.
type Service interface {
	Handler() http.Handler
}
