// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package storage holds the transient OAuth state of the embedded
// authorization server: registered clients, pending authorization codes,
// and issued access tokens. Nothing survives a process restart.
package storage

import (
	"errors"
	"time"
)

// Sentinel errors returned by storage lookups.
var (
	// ErrNotFound indicates the requested entry does not exist. For
	// authorization codes this also covers codes that were already consumed,
	// since consumption removes the entry.
	ErrNotFound = errors.New("not found")

	// ErrExpired indicates the entry exists but its lifetime has elapsed.
	ErrExpired = errors.New("expired")

	// ErrAlreadyExists indicates an entry with the same key is already stored.
	ErrAlreadyExists = errors.New("already exists")
)

// Client is a dynamically registered OAuth client (RFC 7591).
// Clients are public (no secret) and authenticate code exchanges via PKCE.
type Client struct {
	// ID is the server-assigned client identifier.
	ID string

	// Name is the human-readable client name shown on the login page.
	Name string

	// RedirectURIs is the exact set of redirect URIs the client registered.
	// Authorization requests must match one of these byte for byte.
	RedirectURIs []string

	// CreatedAt is when the registration was accepted.
	CreatedAt time.Time
}

// AuthorizationCode is the single-use grant issued after a successful login.
// It binds the eventual token exchange to the client, the redirect URI, and
// the PKCE challenge presented during authorization.
type AuthorizationCode struct {
	ClientID      string
	RedirectURI   string
	CodeChallenge string
	ExpiresAt     time.Time
}

// AccessToken is the bearer grant issued by the token endpoint.
type AccessToken struct {
	ClientID  string
	ExpiresAt time.Time
}
