// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import "errors"

// Validation errors for metadata documents.
var (
	// ErrMissingIssuer indicates the issuer field is missing from the metadata document.
	ErrMissingIssuer = errors.New("missing issuer")

	// ErrMissingAuthorizationEndpoint indicates the authorization_endpoint field is missing.
	ErrMissingAuthorizationEndpoint = errors.New("missing authorization_endpoint")

	// ErrMissingTokenEndpoint indicates the token_endpoint field is missing.
	ErrMissingTokenEndpoint = errors.New("missing token_endpoint")

	// ErrMissingResource indicates the resource field is missing (required by RFC 9728).
	ErrMissingResource = errors.New("missing resource")

	// ErrMissingAuthorizationServers indicates the authorization_servers field is empty.
	ErrMissingAuthorizationServers = errors.New("missing authorization_servers")
)
