// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package authserver implements the embedded OAuth 2.0 authorization server
// that gates the MCP endpoint. It supports Dynamic Client Registration
// (RFC 7591), the authorization code grant with mandatory PKCE S256
// (RFC 7636), and serves the RFC 8414 and RFC 9728 discovery documents.
//
// Identity is intentionally minimal: a single shared password authorizes
// every login, and all state lives in memory. The server exists to satisfy
// the OAuth handshake MCP clients perform, not to be a general identity
// provider.
package authserver
