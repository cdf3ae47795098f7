// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/stacklok/memos-mcp/oauth"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// ClientIDFromContext returns the OAuth client ID of the token that
// authorized the request, when the request passed through RequireToken.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(clientIDKey).(string)
	return clientID, ok
}

// RequireToken guards a handler with bearer token validation. Requests
// without a valid token get a 401 with a WWW-Authenticate challenge whose
// resource_metadata parameter points clients at the RFC 9728 discovery
// document to bootstrap the OAuth flow.
func (s *Server) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeChallenge(w, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			s.writeChallenge(w, "Authorization header must use the Bearer scheme")
			return
		}

		grant, err := s.store.GetAccessToken(r.Context(), parts[1])
		if err != nil {
			// Unknown and expired tokens get the same generic response.
			s.logger.Warn("rejected bearer token", "error", err)
			s.writeChallenge(w, "access token is invalid or expired")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, grant.ClientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeChallenge writes the 401 response for a failed bearer authentication.
func (s *Server) writeChallenge(w http.ResponseWriter, description string) {
	w.Header().Set("WWW-Authenticate", s.challengeHeader(description))
	writeOAuthError(w, errorCodeUnauthorized, description, http.StatusUnauthorized)
}

// challengeHeader formats the WWW-Authenticate value per RFC 6750 Section 3
// and RFC 9728 Section 5.1.
func (s *Server) challengeHeader(description string) string {
	params := []string{
		fmt.Sprintf(`resource_metadata=%q`, s.issuer+oauth.WellKnownOAuthResourcePath),
		fmt.Sprintf(`error=%q`, errorCodeUnauthorized),
	}
	if description != "" {
		// Quoted-string escaping per RFC 7230: backslashes first, then quotes.
		escaped := strings.ReplaceAll(description, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		params = append(params, fmt.Sprintf(`error_description="%s"`, escaped))
	}
	return "Bearer " + strings.Join(params, ", ")
}
