// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"encoding/json"
	"net/http"
)

// OAuth error codes per RFC 6749 Section 5.2 and RFC 6750.
const (
	errorCodeInvalidRequest = "invalid_request"
	errorCodeInvalidClient  = "invalid_client"
	errorCodeInvalidGrant   = "invalid_grant"
	errorCodeUnauthorized   = "unauthorized"
	errorCodeServerError    = "server_error"
)

// errorResponse is the standard OAuth error body.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// writeOAuthError writes a standard {error, error_description} JSON body.
// Callers that need a WWW-Authenticate challenge set the header first.
func writeOAuthError(w http.ResponseWriter, code, description string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
