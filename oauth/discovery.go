// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

// AuthorizationServerMetadata represents the OAuth 2.0 Authorization Server Metadata
// per RFC 8414, limited to the fields this project serves and consumes.
type AuthorizationServerMetadata struct {
	// Issuer is the authorization server's issuer identifier (REQUIRED per RFC 8414).
	Issuer string `json:"issuer"`

	// AuthorizationEndpoint is the URL of the authorization endpoint (RECOMMENDED).
	AuthorizationEndpoint string `json:"authorization_endpoint"`

	// TokenEndpoint is the URL of the token endpoint (RECOMMENDED).
	TokenEndpoint string `json:"token_endpoint"`

	// RegistrationEndpoint is the URL of the Dynamic Client Registration endpoint (OPTIONAL).
	RegistrationEndpoint string `json:"registration_endpoint,omitempty"`

	// ResponseTypesSupported lists the response types supported (RECOMMENDED).
	ResponseTypesSupported []string `json:"response_types_supported,omitempty"`

	// GrantTypesSupported lists the grant types supported (OPTIONAL).
	GrantTypesSupported []string `json:"grant_types_supported,omitempty"`

	// CodeChallengeMethodsSupported lists the PKCE code challenge methods supported (OPTIONAL).
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported,omitempty"`

	// TokenEndpointAuthMethodsSupported lists the authentication methods supported
	// at the token endpoint (OPTIONAL).
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported,omitempty"`
}

// Validate checks that the metadata carries the fields RFC 8414 requires or recommends
// for a functioning authorization server.
func (m *AuthorizationServerMetadata) Validate() error {
	if m.Issuer == "" {
		return ErrMissingIssuer
	}
	if m.AuthorizationEndpoint == "" {
		return ErrMissingAuthorizationEndpoint
	}
	if m.TokenEndpoint == "" {
		return ErrMissingTokenEndpoint
	}
	return nil
}

// SupportsPKCE returns true if the authorization server supports PKCE with S256.
func (m *AuthorizationServerMetadata) SupportsPKCE() bool {
	for _, method := range m.CodeChallengeMethodsSupported {
		if method == PKCEMethodS256 {
			return true
		}
	}
	return false
}

// SupportsGrantType returns true if the authorization server supports the given grant type.
func (m *AuthorizationServerMetadata) SupportsGrantType(grantType string) bool {
	for _, gt := range m.GrantTypesSupported {
		if gt == grantType {
			return true
		}
	}
	return false
}

// ProtectedResourceMetadata represents the OAuth 2.0 Protected Resource Metadata
// per RFC 9728. MCP clients fetch this document to discover which authorization
// server guards the resource.
type ProtectedResourceMetadata struct {
	// Resource is the protected resource's identifier (REQUIRED per RFC 9728).
	Resource string `json:"resource"`

	// AuthorizationServers lists issuer identifiers of authorization servers
	// that can issue tokens for this resource.
	AuthorizationServers []string `json:"authorization_servers"`

	// BearerMethodsSupported lists the supported methods of sending a bearer token.
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`

	// ResourceName is a human-readable name for the protected resource (OPTIONAL).
	ResourceName string `json:"resource_name,omitempty"`
}

// Validate checks the fields RFC 9728 requires.
func (m *ProtectedResourceMetadata) Validate() error {
	if m.Resource == "" {
		return ErrMissingResource
	}
	if len(m.AuthorizationServers) == 0 {
		return ErrMissingAuthorizationServers
	}
	return nil
}
