// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the memos-mcp configuration from an optional
// YAML file with environment variable overrides.
//
// The file is looked up via an explicit path, the MEMOS_MCP_CONFIG
// variable, or the XDG config directory, in that order of preference.
// Environment variables always win over file values.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/memos-mcp/env"
	validation "github.com/stacklok/memos-mcp/validation/http"
)

// Defaults applied before the file and environment are consulted.
const (
	DefaultMemosBaseURL = "http://localhost:5230"
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 8716
	DefaultTokenTTL     = 3600
)

// configFileRelPath is resolved against the XDG config directories.
const configFileRelPath = "memos-mcp/config.yaml"

// Environment variables recognized by Load.
const (
	EnvConfigPath    = "MEMOS_MCP_CONFIG"
	EnvMemosBaseURL  = "MEMOS_BASE_URL"
	EnvMemosAPIToken = "MEMOS_API_TOKEN"
	EnvHost          = "MEMOS_MCP_HOST"
	EnvPort          = "MEMOS_MCP_PORT"
	EnvPublicURL     = "MEMOS_MCP_PUBLIC_URL"
	EnvPassword      = "MEMOS_MCP_PASSWORD"
	EnvTokenTTL      = "MEMOS_MCP_TOKEN_TTL"
)

// Config holds everything the memos-mcp binary needs to run.
type Config struct {
	// MemosBaseURL is the address of the upstream Memos instance.
	MemosBaseURL string `yaml:"memos_base_url"`
	// MemosAPIToken authenticates requests to the Memos API.
	MemosAPIToken string `yaml:"memos_api_token"`
	// Host and Port form the listen address.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// PublicURL is the externally reachable base URL of this server.
	// It doubles as the OAuth issuer identifier.
	PublicURL string `yaml:"public_url"`
	// Password is the shared secret entered on the authorization page.
	Password string `yaml:"password"`
	// TokenTTLSeconds is the access token lifetime.
	TokenTTLSeconds int `yaml:"token_ttl_seconds"`
}

// Default returns a Config populated with defaults only. The result
// does not validate until PublicURL and Password are set.
func Default() *Config {
	return &Config{
		MemosBaseURL:    DefaultMemosBaseURL,
		Host:            DefaultHost,
		Port:            DefaultPort,
		TokenTTLSeconds: DefaultTokenTTL,
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment overrides, then validates the result.
//
// When path is empty, the file is looked up via MEMOS_MCP_CONFIG and
// then the XDG config directories. A missing file is not an error; a
// file that exists but cannot be parsed is.
func Load(path string, environ env.Reader) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = environ.Getenv(EnvConfigPath)
	}
	if path == "" {
		if found, err := xdg.SearchConfigFile(configFileRelPath); err == nil {
			path = found
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func applyEnv(cfg *Config, environ env.Reader) error {
	if v := environ.Getenv(EnvMemosBaseURL); v != "" {
		cfg.MemosBaseURL = v
	}
	if v := environ.Getenv(EnvMemosAPIToken); v != "" {
		cfg.MemosAPIToken = v
	}
	if v := environ.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := environ.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v := environ.Getenv(EnvPublicURL); v != "" {
		cfg.PublicURL = v
	}
	if v := environ.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := environ.Getenv(EnvTokenTTL); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTokenTTL, v, err)
		}
		cfg.TokenTTLSeconds = ttl
	}
	return nil
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if c.MemosBaseURL == "" {
		return fmt.Errorf("memos base URL is required")
	}
	// The token is spliced into an Authorization header verbatim, so it
	// must be a valid header value (no CR/LF or control bytes).
	if c.MemosAPIToken != "" {
		if err := validation.ValidateHeaderValue(c.MemosAPIToken); err != nil {
			return fmt.Errorf("invalid memos API token: %w", err)
		}
	}
	if c.Host == "" {
		return fmt.Errorf("listen host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.PublicURL == "" {
		return fmt.Errorf("public URL is required: set %s", EnvPublicURL)
	}
	if err := validation.ValidateResourceURI(c.PublicURL); err != nil {
		return fmt.Errorf("invalid public URL: %w", err)
	}
	if c.Password == "" {
		return fmt.Errorf("password is required: set %s", EnvPassword)
	}
	if c.TokenTTLSeconds < 1 {
		return fmt.Errorf("invalid token TTL %d: must be positive", c.TokenTTLSeconds)
	}
	return nil
}

// ListenAddr returns the host:port pair the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TokenTTL returns the access token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}
