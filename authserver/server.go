// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stacklok/memos-mcp/authserver/storage"
	"github.com/stacklok/memos-mcp/oauth"
	validation "github.com/stacklok/memos-mcp/validation/http"
)

const (
	// DefaultAccessTokenTTL is the access token lifetime used when the
	// configuration does not specify one.
	DefaultAccessTokenTTL = time.Hour

	// AuthorizationCodeTTL is the fixed lifetime of authorization codes.
	// Five minutes is ample for the redirect round trip and short enough
	// to limit the window for code interception.
	AuthorizationCodeTTL = 5 * time.Minute

	// secretLength is the number of random bytes in generated codes and
	// tokens (256 bits of entropy).
	secretLength = 32
)

// Config carries the settings of the embedded authorization server.
type Config struct {
	// Issuer is the externally reachable base URL of this server, without
	// a trailing slash. It doubles as the RFC 9728 resource identifier.
	Issuer string

	// Password is the shared secret accepted by the login form.
	Password string

	// AccessTokenTTL is the lifetime of issued access tokens.
	// Defaults to DefaultAccessTokenTTL.
	AccessTokenTTL time.Duration

	// ResourceName is the human-readable name advertised in the protected
	// resource metadata.
	ResourceName string
}

// Server is the embedded OAuth 2.0 authorization server. It owns the
// transient client, code, and token state and exposes the HTTP controllers
// for the OAuth endpoints plus the bearer-token middleware guarding the
// MCP endpoint.
type Server struct {
	issuer       string
	password     []byte
	tokenTTL     time.Duration
	resourceName string
	store        *storage.Memory
	logger       *slog.Logger
	loginPage    *template.Template
}

// New creates a Server backed by the given store. The issuer must be an
// absolute http(s) URL without a fragment, and the password must be set.
func New(cfg Config, store *storage.Memory, logger *slog.Logger) (*Server, error) {
	if err := validation.ValidateResourceURI(cfg.Issuer); err != nil {
		return nil, fmt.Errorf("invalid issuer: %w", err)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("password must be set")
	}
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	tokenTTL := cfg.AccessTokenTTL
	if tokenTTL <= 0 {
		tokenTTL = DefaultAccessTokenTTL
	}

	tmpl, err := template.New("login").Parse(loginPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing login template: %w", err)
	}

	return &Server{
		issuer:       strings.TrimRight(cfg.Issuer, "/"),
		password:     []byte(cfg.Password),
		tokenTTL:     tokenTTL,
		resourceName: cfg.ResourceName,
		store:        store,
		logger:       logger,
		loginPage:    tmpl,
	}, nil
}

// Routes registers the OAuth endpoints on the given mux. The protected MCP
// endpoint is not registered here; wrap it with RequireToken instead.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+oauth.WellKnownOAuthServerPath, s.handleAuthorizationServerMetadata)
	mux.HandleFunc("GET "+oauth.WellKnownOAuthResourcePath, s.handleProtectedResourceMetadata)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /authorize", s.handleAuthorizeForm)
	mux.HandleFunc("POST /authorize", s.handleAuthorizeSubmit)
	mux.HandleFunc("POST /token", s.handleToken)
}

// newSecret returns a fresh 256-bit random value encoded as unpadded
// base64url, used for authorization codes and access tokens.
func newSecret() (string, error) {
	buf := make([]byte, secretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
