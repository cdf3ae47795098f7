// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"net/http"

	"github.com/stacklok/memos-mcp/oauth"
)

// handleAuthorizationServerMetadata serves the RFC 8414 authorization server
// metadata document. The document is a pure function of the configured issuer.
func (s *Server) handleAuthorizationServerMetadata(w http.ResponseWriter, _ *http.Request) {
	meta := oauth.AuthorizationServerMetadata{
		Issuer:                            s.issuer,
		AuthorizationEndpoint:             s.issuer + "/authorize",
		TokenEndpoint:                     s.issuer + "/token",
		RegistrationEndpoint:              s.issuer + "/register",
		ResponseTypesSupported:            []string{oauth.ResponseTypeCode},
		GrantTypesSupported:               []string{oauth.GrantTypeAuthorizationCode},
		CodeChallengeMethodsSupported:     []string{oauth.PKCEMethodS256},
		TokenEndpointAuthMethodsSupported: []string{oauth.TokenEndpointAuthMethodNone},
	}

	writeJSON(w, http.StatusOK, meta)
}

// handleProtectedResourceMetadata serves the RFC 9728 protected resource
// metadata document. MCP clients follow the resource_metadata hint in the
// 401 challenge to this endpoint to discover the authorization server.
func (s *Server) handleProtectedResourceMetadata(w http.ResponseWriter, _ *http.Request) {
	meta := oauth.ProtectedResourceMetadata{
		Resource:               s.issuer,
		AuthorizationServers:   []string{s.issuer},
		BearerMethodsSupported: []string{oauth.BearerMethodHeader},
		ResourceName:           s.resourceName,
	}

	writeJSON(w, http.StatusOK, meta)
}
