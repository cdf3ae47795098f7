// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package oauth provides shared RFC-defined types, constants, and validation
// utilities for OAuth 2.0. It covers the metadata documents served by the
// embedded authorization server (RFC 8414 and RFC 9728) and redirect URI
// validation per RFC 6749 and RFC 8252.
//
// # Metadata Documents
//
//	meta := oauth.AuthorizationServerMetadata{
//		Issuer:                "https://auth.example.com",
//		AuthorizationEndpoint: "https://auth.example.com/authorize",
//		TokenEndpoint:         "https://auth.example.com/token",
//	}
//	if err := meta.Validate(); err != nil {
//		// Handle validation error
//	}
//
// # Redirect URI Validation
//
//	// Strict policy: only https and http-loopback
//	err := oauth.ValidateRedirectURI("https://example.com/callback", oauth.RedirectURIPolicyStrict)
//
//	// Allow private-use schemes for native apps
//	err := oauth.ValidateRedirectURI("myapp://callback", oauth.RedirectURIPolicyAllowPrivateSchemes)
package oauth
