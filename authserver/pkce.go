// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// PKCE validation errors.
var (
	// ErrInvalidCodeVerifier indicates the code_verifier violates the
	// RFC 7636 Section 4.1 format (43 to 128 unreserved characters).
	ErrInvalidCodeVerifier = errors.New("invalid code verifier")

	// ErrInvalidCodeChallenge indicates the code_challenge is not a valid
	// S256 challenge (exactly 43 base64url characters).
	ErrInvalidCodeChallenge = errors.New("invalid code challenge")

	// ErrCodeVerifierMismatch indicates the S256 transform of the verifier
	// does not match the challenge bound to the authorization code.
	ErrCodeVerifierMismatch = errors.New("code verifier does not match challenge")
)

// isUnreservedChar reports whether c is in the RFC 3986 unreserved set.
func isUnreservedChar(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// isBase64URLChar reports whether c is in the unpadded base64url alphabet.
func isBase64URLChar(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

// validateCodeVerifier validates the format of a code verifier per
// RFC 7636 Section 4.1.
func validateCodeVerifier(verifier string) error {
	if len(verifier) < 43 || len(verifier) > 128 {
		return ErrInvalidCodeVerifier
	}
	for _, c := range verifier {
		if !isUnreservedChar(c) {
			return ErrInvalidCodeVerifier
		}
	}
	return nil
}

// validateCodeChallenge validates the format of an S256 code challenge:
// an unpadded base64url encoding of a SHA-256 digest is always 43 characters.
func validateCodeChallenge(challenge string) error {
	if len(challenge) != 43 {
		return ErrInvalidCodeChallenge
	}
	for _, c := range challenge {
		if !isBase64URLChar(c) {
			return ErrInvalidCodeChallenge
		}
	}
	return nil
}

// verifyS256 checks that base64url(sha256(verifier)) equals the stored
// challenge, per RFC 7636 Section 4.6. Only the S256 method is supported.
func verifyS256(challenge, verifier string) error {
	if err := validateCodeVerifier(verifier); err != nil {
		return err
	}

	hash := sha256.Sum256([]byte(verifier))
	if base64.RawURLEncoding.EncodeToString(hash[:]) != challenge {
		return ErrCodeVerifierMismatch
	}
	return nil
}
