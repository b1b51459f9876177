//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

// Package config loads the bridge service configuration from YAML, with
// environment variable expansion and duration parsing.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when fields are omitted.
const (
	defaultListenAddr     = ":8080"
	defaultPath           = "/agui"
	defaultConnectTimeout = 30 * time.Second
	defaultRunTimeout     = 5 * time.Minute
	defaultLogLevel       = "info"
)

// Config is the complete newsbridge configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	Path       string `yaml:"path"`
}

// UpstreamConfig holds the backend run-endpoint configuration.
type UpstreamConfig struct {
	URL string `yaml:"url"`

	ConnectTimeout time.Duration `yaml:"-"`
	RunTimeout     time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling.
	ConnectTimeoutRaw string `yaml:"connect_timeout"`
	RunTimeoutRaw     string `yaml:"run_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded and
// duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = defaultListenAddr
	}
	if c.Server.Path == "" {
		c.Server.Path = defaultPath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) parseDurations() error {
	var err error
	c.Upstream.ConnectTimeout, err = parseDuration(c.Upstream.ConnectTimeoutRaw, defaultConnectTimeout)
	if err != nil {
		return fmt.Errorf("upstream.connect_timeout: %w", err)
	}
	c.Upstream.RunTimeout, err = parseDuration(c.Upstream.RunTimeoutRaw, defaultRunTimeout)
	if err != nil {
		return fmt.Errorf("upstream.run_timeout: %w", err)
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

// Validate checks that all required configuration fields are present.
func (c *Config) Validate() error {
	if c.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}
	return nil
}
