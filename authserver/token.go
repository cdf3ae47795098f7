// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/stacklok/memos-mcp/authserver/storage"
	"github.com/stacklok/memos-mcp/oauth"
)

// tokenResponse is the successful token endpoint body per RFC 6749 Section 5.1.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// handleToken exchanges an authorization code for an access token. The
// checks run in a fixed order; the code is consumed before the redirect URI
// and PKCE checks so that a failed exchange still burns the code.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, errorCodeInvalidRequest, "failed to parse form", http.StatusBadRequest)
		return
	}

	if grantType := r.PostForm.Get("grant_type"); grantType != oauth.GrantTypeAuthorizationCode {
		writeOAuthError(w, errorCodeInvalidRequest, "grant_type must be authorization_code", http.StatusBadRequest)
		return
	}

	code := r.PostForm.Get("code")
	clientID := r.PostForm.Get("client_id")
	redirectURI := r.PostForm.Get("redirect_uri")
	codeVerifier := r.PostForm.Get("code_verifier")

	if code == "" || clientID == "" || redirectURI == "" || codeVerifier == "" {
		writeOAuthError(w, errorCodeInvalidRequest,
			"code, client_id, redirect_uri, and code_verifier are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		s.logger.Warn("token exchange for unknown client", "client_id", clientID)
		writeOAuthError(w, errorCodeInvalidClient, "unknown client", http.StatusUnauthorized)
		return
	}

	// Single consumer: the grant is removed here even if a later check
	// fails, so a stolen code cannot be retried with corrected parameters.
	grant, err := s.store.ConsumeAuthorizationCode(ctx, code)
	if err != nil {
		s.logger.Warn("token exchange with unusable code", "client_id", clientID, "error", err)
		writeOAuthError(w, errorCodeInvalidGrant, "authorization code is invalid or expired", http.StatusBadRequest)
		return
	}

	if grant.ClientID != clientID {
		s.logger.Warn("token exchange client mismatch", "client_id", clientID)
		writeOAuthError(w, errorCodeInvalidGrant, "authorization code was issued to a different client", http.StatusBadRequest)
		return
	}

	if grant.RedirectURI != redirectURI {
		s.logger.Warn("token exchange redirect_uri mismatch", "client_id", clientID)
		writeOAuthError(w, errorCodeInvalidGrant, "redirect_uri does not match the authorization request", http.StatusBadRequest)
		return
	}

	if err := verifyS256(grant.CodeChallenge, codeVerifier); err != nil {
		s.logger.Warn("token exchange PKCE failure", "client_id", clientID, "error", err)
		if errors.Is(err, ErrInvalidCodeVerifier) {
			writeOAuthError(w, errorCodeInvalidRequest, "code_verifier is malformed", http.StatusBadRequest)
			return
		}
		writeOAuthError(w, errorCodeInvalidGrant, "code_verifier does not match the code challenge", http.StatusBadRequest)
		return
	}

	token, err := newSecret()
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err)
		writeOAuthError(w, errorCodeServerError, "failed to issue access token", http.StatusInternalServerError)
		return
	}

	if err := s.store.CreateAccessToken(ctx, token, &storage.AccessToken{
		ClientID:  clientID,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}); err != nil {
		s.logger.Error("failed to store access token", "error", err)
		writeOAuthError(w, errorCodeServerError, "failed to issue access token", http.StatusInternalServerError)
		return
	}

	s.logger.Info("issued access token", "client_id", clientID)

	// RFC 6749 Section 5.1: responses with tokens must not be cached.
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   oauth.TokenTypeBearer,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	})
}
