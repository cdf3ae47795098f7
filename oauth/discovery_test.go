// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"errors"
	"testing"
)

func TestAuthorizationServerMetadata_Validate(t *testing.T) {
	t.Parallel()

	validMeta := func() AuthorizationServerMetadata {
		return AuthorizationServerMetadata{
			Issuer:                 "https://example.com",
			AuthorizationEndpoint:  "https://example.com/authorize",
			TokenEndpoint:          "https://example.com/token",
			ResponseTypesSupported: []string{"code"},
		}
	}

	tests := []struct {
		name    string
		modify  func(*AuthorizationServerMetadata)
		wantErr error
	}{
		{"valid document", nil, nil},
		{"missing issuer", func(m *AuthorizationServerMetadata) { m.Issuer = "" }, ErrMissingIssuer},
		{"missing authorization_endpoint", func(m *AuthorizationServerMetadata) { m.AuthorizationEndpoint = "" }, ErrMissingAuthorizationEndpoint},
		{"missing token_endpoint", func(m *AuthorizationServerMetadata) { m.TokenEndpoint = "" }, ErrMissingTokenEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			meta := validMeta()
			if tt.modify != nil {
				tt.modify(&meta)
			}
			err := meta.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizationServerMetadata_SupportsPKCE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		methods []string
		want    bool
	}{
		{"nil slice", nil, false},
		{"empty slice", []string{}, false},
		{"only plain", []string{"plain"}, false},
		{"S256 present", []string{"S256"}, true},
		{"both plain and S256", []string{"plain", "S256"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			meta := AuthorizationServerMetadata{
				CodeChallengeMethodsSupported: tt.methods,
			}
			if got := meta.SupportsPKCE(); got != tt.want {
				t.Errorf("SupportsPKCE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizationServerMetadata_SupportsGrantType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		grants    []string
		grantType string
		want      bool
	}{
		{"nil slice", nil, GrantTypeAuthorizationCode, false},
		{"empty slice", []string{}, GrantTypeAuthorizationCode, false},
		{"grant type present", []string{GrantTypeAuthorizationCode}, GrantTypeAuthorizationCode, true},
		{"grant type absent", []string{"refresh_token"}, GrantTypeAuthorizationCode, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			meta := AuthorizationServerMetadata{
				GrantTypesSupported: tt.grants,
			}
			if got := meta.SupportsGrantType(tt.grantType); got != tt.want {
				t.Errorf("SupportsGrantType(%q) = %v, want %v", tt.grantType, got, tt.want)
			}
		})
	}
}

func TestProtectedResourceMetadata_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		meta    ProtectedResourceMetadata
		wantErr error
	}{
		{
			name: "valid document",
			meta: ProtectedResourceMetadata{
				Resource:             "https://example.com",
				AuthorizationServers: []string{"https://example.com"},
			},
		},
		{
			name: "missing resource",
			meta: ProtectedResourceMetadata{
				AuthorizationServers: []string{"https://example.com"},
			},
			wantErr: ErrMissingResource,
		},
		{
			name: "missing authorization servers",
			meta: ProtectedResourceMetadata{
				Resource: "https://example.com",
			},
			wantErr: ErrMissingAuthorizationServers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.meta.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
