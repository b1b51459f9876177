//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Client opens run streams against the backend. It performs no retries;
// failure is surfaced once to the caller.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the backend run endpoint. connectTimeout
// bounds dialing and response headers only; the stream itself is bounded
// by the caller's context. Zero leaves the default transport untouched.
func NewClient(url string, connectTimeout time.Duration) *Client {
	transport := http.DefaultTransport
	if connectTimeout > 0 {
		transport = &http.Transport{
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			ResponseHeaderTimeout: connectTimeout,
		}
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Transport: transport},
	}
}

// Open starts one run and returns a decoder over its event stream. The
// decoder must be closed by the caller.
func (c *Client) Open(ctx context.Context, req *RunRequest) (*Decoder, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode run request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build run request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	rsp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call run endpoint: %w", err)
	}
	if rsp.StatusCode < http.StatusOK || rsp.StatusCode >= http.StatusMultipleChoices {
		rsp.Body.Close()
		return nil, fmt.Errorf("run endpoint returned %s", rsp.Status)
	}
	return NewDecoder(rsp.Body), nil
}
