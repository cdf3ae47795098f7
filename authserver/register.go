// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/memos-mcp/authserver/storage"
	"github.com/stacklok/memos-mcp/oauth"
)

// registrationRequest is the subset of the RFC 7591 client metadata this
// server accepts. Everything else a client sends is ignored.
type registrationRequest struct {
	RedirectURIs []string `json:"redirect_uris"`
	ClientName   string   `json:"client_name"`
}

// registrationResponse echoes the registered metadata back to the client
// per RFC 7591 Section 3.2.1.
type registrationResponse struct {
	ClientID                string   `json:"client_id"`
	ClientName              string   `json:"client_name,omitempty"`
	RedirectURIs            []string `json:"redirect_uris"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method"`
	GrantTypes              []string `json:"grant_types"`
	ResponseTypes           []string `json:"response_types"`
}

// handleRegister implements unauthenticated Dynamic Client Registration.
// Every client is public: no secret is issued, and the later code exchange
// is bound to the client through PKCE instead.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOAuthError(w, errorCodeInvalidRequest, "request body is not valid JSON", http.StatusBadRequest)
		return
	}

	// Native MCP clients register loopback and private-scheme callbacks,
	// so the permissive RFC 8252 Section 7.1 policy applies.
	if err := oauth.ValidateRedirectURIs(req.RedirectURIs, oauth.RedirectURIPolicyAllowPrivateSchemes); err != nil {
		writeOAuthError(w, errorCodeInvalidRequest, err.Error(), http.StatusBadRequest)
		return
	}

	client := &storage.Client{
		ID:           uuid.NewString(),
		Name:         req.ClientName,
		RedirectURIs: req.RedirectURIs,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateClient(r.Context(), client); err != nil {
		s.logger.Error("failed to store registered client", "error", err)
		writeOAuthError(w, errorCodeServerError, "failed to register client", http.StatusInternalServerError)
		return
	}

	s.logger.Info("registered client",
		"client_id", client.ID,
		"client_name", client.Name,
		"redirect_uris", client.RedirectURIs)

	writeJSON(w, http.StatusCreated, registrationResponse{
		ClientID:                client.ID,
		ClientName:              client.Name,
		RedirectURIs:            client.RedirectURIs,
		TokenEndpointAuthMethod: oauth.TokenEndpointAuthMethodNone,
		GrantTypes:              []string{oauth.GrantTypeAuthorizationCode},
		ResponseTypes:           []string{oauth.ResponseTypeCode},
	})
}
