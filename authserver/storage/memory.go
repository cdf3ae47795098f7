// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"slices"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often the background sweep reclaims
// expired entries. Expiry itself is always enforced lazily on lookup;
// the sweep only bounds memory growth.
const DefaultCleanupInterval = 5 * time.Minute

// timedEntry wraps a value with its expiry for TTL tracking.
type timedEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory implements transient OAuth state with in-memory maps.
// It is safe for concurrent use.
//
// Authorization codes and access tokens are keyed by the SHA-256 digest of
// the secret value ("signature") rather than the value itself, so lookups
// never compare secret material directly and a leaked map dump does not
// reveal usable credentials.
type Memory struct {
	mu sync.RWMutex

	// clients maps client_id -> Client.
	clients map[string]*Client

	// codes maps code signature -> pending authorization. Entries are
	// removed on consumption, making codes single-use: under concurrent
	// exchange exactly one caller observes the entry.
	codes map[string]*timedEntry[*AuthorizationCode]

	// tokens maps token signature -> issued access token.
	tokens map[string]*timedEntry[*AccessToken]

	cleanupInterval time.Duration

	// stopCleanup signals the sweep goroutine to stop; cleanupDone is
	// closed once it has fully stopped.
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

// MemoryOption configures a Memory instance.
type MemoryOption func(*Memory)

// WithCleanupInterval sets a custom background sweep interval.
func WithCleanupInterval(interval time.Duration) MemoryOption {
	return func(m *Memory) {
		m.cleanupInterval = interval
	}
}

// NewMemory creates an empty Memory store and starts the background
// sweep goroutine. Call Close when the store is no longer needed.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		clients:         make(map[string]*Client),
		codes:           make(map[string]*timedEntry[*AuthorizationCode]),
		tokens:          make(map[string]*timedEntry[*AccessToken]),
		cleanupInterval: DefaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
		cleanupDone:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupLoop()

	return m
}

// Close stops the background sweep goroutine and waits for it to finish.
func (m *Memory) Close() error {
	close(m.stopCleanup)
	<-m.cleanupDone
	return nil
}

// signature derives the map key for a secret value. Keying by digest keeps
// raw codes and tokens out of the store.
func signature(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// CreateClient stores a registered client.
func (m *Memory) CreateClient(_ context.Context, client *Client) error {
	if client == nil || client.ID == "" {
		return fmt.Errorf("client ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clients[client.ID]; exists {
		return fmt.Errorf("%w: client %s", ErrAlreadyExists, client.ID)
	}

	// Defensive copy to prevent aliasing issues
	m.clients[client.ID] = &Client{
		ID:           client.ID,
		Name:         client.Name,
		RedirectURIs: slices.Clone(client.RedirectURIs),
		CreatedAt:    client.CreatedAt,
	}
	return nil
}

// GetClient loads a client by its ID. Returns ErrNotFound if the client
// was never registered (or the process restarted since).
func (m *Memory) GetClient(_ context.Context, id string) (*Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: client %s", ErrNotFound, id)
	}

	return &Client{
		ID:           client.ID,
		Name:         client.Name,
		RedirectURIs: slices.Clone(client.RedirectURIs),
		CreatedAt:    client.CreatedAt,
	}, nil
}

// CreateAuthorizationCode stores a pending authorization code.
func (m *Memory) CreateAuthorizationCode(_ context.Context, code string, grant *AuthorizationCode) error {
	if code == "" {
		return fmt.Errorf("authorization code cannot be empty")
	}
	if grant == nil {
		return fmt.Errorf("authorization grant cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.codes[signature(code)] = &timedEntry[*AuthorizationCode]{
		value:     &AuthorizationCode{ClientID: grant.ClientID, RedirectURI: grant.RedirectURI, CodeChallenge: grant.CodeChallenge, ExpiresAt: grant.ExpiresAt},
		expiresAt: grant.ExpiresAt,
	}
	return nil
}

// ConsumeAuthorizationCode atomically removes and returns the pending
// authorization for the given code. Under concurrent exchange of the same
// code, exactly one caller succeeds; every other caller gets ErrNotFound.
// A code past its expiry returns ErrExpired and is removed as well.
func (m *Memory) ConsumeAuthorizationCode(_ context.Context, code string) (*AuthorizationCode, error) {
	sig := signature(code)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.codes[sig]
	if !ok {
		return nil, fmt.Errorf("%w: authorization code", ErrNotFound)
	}
	delete(m.codes, sig)

	if time.Now().After(entry.expiresAt) {
		return nil, fmt.Errorf("%w: authorization code", ErrExpired)
	}

	grant := entry.value
	return &AuthorizationCode{
		ClientID:      grant.ClientID,
		RedirectURI:   grant.RedirectURI,
		CodeChallenge: grant.CodeChallenge,
		ExpiresAt:     grant.ExpiresAt,
	}, nil
}

// CreateAccessToken stores an issued access token.
func (m *Memory) CreateAccessToken(_ context.Context, token string, grant *AccessToken) error {
	if token == "" {
		return fmt.Errorf("access token cannot be empty")
	}
	if grant == nil {
		return fmt.Errorf("access token grant cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[signature(token)] = &timedEntry[*AccessToken]{
		value:     &AccessToken{ClientID: grant.ClientID, ExpiresAt: grant.ExpiresAt},
		expiresAt: grant.ExpiresAt,
	}
	return nil
}

// GetAccessToken validates a bearer token value and returns its grant.
// Returns ErrNotFound for unknown tokens and ErrExpired for known tokens
// past their lifetime.
func (m *Memory) GetAccessToken(_ context.Context, token string) (*AccessToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.tokens[signature(token)]
	if !ok {
		return nil, fmt.Errorf("%w: access token", ErrNotFound)
	}

	if time.Now().After(entry.expiresAt) {
		return nil, fmt.Errorf("%w: access token", ErrExpired)
	}

	grant := entry.value
	return &AccessToken{ClientID: grant.ClientID, ExpiresAt: grant.ExpiresAt}, nil
}

// cleanupLoop runs periodic cleanup of expired entries.
func (m *Memory) cleanupLoop() {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCleanup:
			return
		case <-ticker.C:
			m.cleanupExpired()
		}
	}
}

// cleanupExpired removes expired codes and tokens. Uses collect-then-delete:
// expired keys are gathered under the read lock, then removed under the
// write lock, keeping write lock hold time short.
func (m *Memory) cleanupExpired() {
	now := time.Now()

	m.mu.RLock()

	var expiredCodes []string
	for k, v := range m.codes {
		if now.After(v.expiresAt) {
			expiredCodes = append(expiredCodes, k)
		}
	}

	var expiredTokens []string
	for k, v := range m.tokens {
		if now.After(v.expiresAt) {
			expiredTokens = append(expiredTokens, k)
		}
	}

	m.mu.RUnlock()

	if len(expiredCodes) == 0 && len(expiredTokens) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range expiredCodes {
		delete(m.codes, k)
	}
	for _, k := range expiredTokens {
		delete(m.tokens, k)
	}
}

// Stats contains counts of stored entries, useful for tests and monitoring.
type Stats struct {
	Clients            int
	AuthorizationCodes int
	AccessTokens       int
}

// Stats returns current counts of stored entries.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		Clients:            len(m.clients),
		AuthorizationCodes: len(m.codes),
		AccessTokens:       len(m.tokens),
	}
}
