//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Command newsbridge-client is an interactive debug client for the bridge.
// It posts a run request to the SSE endpoint and prints every translated
// event as it arrives.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/client/sse"
	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/sirupsen/logrus"
)

const (
	defaultEndpoint  = "http://127.0.0.1:8080/agui"
	requestTimeout   = 2 * time.Minute
	connectTimeout   = 30 * time.Second
	readTimeout      = 5 * time.Minute
	streamBufferSize = 100
)

func main() {
	endpoint := flag.String("endpoint", defaultEndpoint, "bridge SSE endpoint")
	flag.Parse()

	if err := runInteractive(*endpoint); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runInteractive(endpoint string) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("newsbridge client. Endpoint: %s\n", endpoint)
	fmt.Println("Type your question and press Enter (Ctrl+D to exit).")

	for {
		fmt.Print("You> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Println()
			return nil
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if strings.EqualFold(prompt, "quit") || strings.EqualFold(prompt, "exit") {
			return nil
		}
		if err := streamRun(endpoint, prompt); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func streamRun(endpoint, prompt string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	client := newSSEClient(endpoint)
	defer client.Close()

	payload := map[string]any{
		"threadId": "debug-thread",
		"runId":    fmt.Sprintf("run-%d", time.Now().UnixNano()),
		"messages": []map[string]any{{"role": "user", "content": prompt}},
	}

	frames, errCh, err := client.Stream(sse.StreamOptions{Context: ctx, Payload: payload})
	if err != nil {
		return fmt.Errorf("start SSE stream: %w", err)
	}

	for frames != nil || errCh != nil {
		select {
		case frame, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			evt, err := events.EventFromJSON(frame.Data)
			if err != nil {
				return fmt.Errorf("parse event: %w", err)
			}
			fmt.Println(formatEvent(evt))
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("stream error: %w", err)
			}
		case <-ctx.Done():
			return fmt.Errorf("stream timeout: %w", ctx.Err())
		}
	}
	fmt.Println()
	return nil
}

func newSSEClient(endpoint string) *sse.Client {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return sse.NewClient(sse.Config{
		Endpoint:       endpoint,
		ConnectTimeout: connectTimeout,
		ReadTimeout:    readTimeout,
		BufferSize:     streamBufferSize,
		Logger:         logger,
	})
}

func formatEvent(evt events.Event) string {
	label := fmt.Sprintf("[%s]", evt.Type())
	switch e := evt.(type) {
	case *events.RunErrorEvent:
		return fmt.Sprintf("Agent> %s %s", label, e.Message)
	case *events.TextMessageContentEvent:
		return fmt.Sprintf("Agent> %s %s", label, e.Delta)
	case *events.ToolCallStartEvent:
		return fmt.Sprintf("Agent> %s tool '%s' started, id: %s", label, e.ToolCallName, e.ToolCallID)
	case *events.ToolCallArgsEvent:
		return fmt.Sprintf("Agent> %s args: %s", label, e.Delta)
	case *events.ToolCallEndEvent:
		return fmt.Sprintf("Agent> %s tool call completed, id: %s", label, e.ToolCallID)
	case *events.CustomEvent:
		return fmt.Sprintf("Agent> %s %s: %v", label, e.Name, e.Value)
	default:
		return fmt.Sprintf("Agent> %s", label)
	}
}
