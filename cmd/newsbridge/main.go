//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Command newsbridge serves the agent-event stream bridge: it accepts
// AG-UI run requests and relays the news-agent backend's event stream to
// the caller as translated AG-UI events.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/newsraven/newsbridge"
	"github.com/newsraven/newsbridge/config"
	"github.com/newsraven/newsbridge/internal/httpserver"
	"github.com/newsraven/newsbridge/log"
	"github.com/newsraven/newsbridge/runner"
)

func main() {
	configPath := flag.String("config", "newsbridge.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(cfg.Logging.Level)

	bridge, err := newsbridge.New(cfg.Upstream.URL,
		newsbridge.WithPath(cfg.Server.Path),
		newsbridge.WithConnectTimeout(cfg.Upstream.ConnectTimeout),
		newsbridge.WithRunnerOptions(runner.WithRunTimeout(cfg.Upstream.RunTimeout)),
	)
	if err != nil {
		log.Fatalf("create bridge: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("bridging %s at %s", cfg.Upstream.URL, cfg.Server.Path)
	srv := httpserver.New(cfg.Server.ListenAddr, bridge.Path(), bridge.Handler())
	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
