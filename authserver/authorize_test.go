// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedirectURI = "http://localhost:3000/callback"

// validAuthorizeQuery returns a complete, valid authorization request.
func validAuthorizeQuery(clientID, challenge string) url.Values {
	return url.Values{
		"client_id":             {clientID},
		"redirect_uri":          {testRedirectURI},
		"response_type":         {"code"},
		"state":                 {"xyz"},
		"code_challenge":        {challenge},
		"code_challenge_method": {"S256"},
	}
}

func TestHandleAuthorizeForm(t *testing.T) {
	t.Parallel()

	challenge := s256Challenge(strings.Repeat("v", 50))

	tests := []struct {
		name       string
		modify     func(url.Values)
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid request renders form",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing client_id",
			modify:     func(q url.Values) { q.Del("client_id") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "unknown client",
			modify:     func(q url.Values) { q.Set("client_id", "nope") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_client",
		},
		{
			name:       "unregistered redirect_uri",
			modify:     func(q url.Values) { q.Set("redirect_uri", "http://localhost:3000/other") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "missing redirect_uri",
			modify:     func(q url.Values) { q.Del("redirect_uri") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "wrong response_type",
			modify:     func(q url.Values) { q.Set("response_type", "token") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "missing code_challenge",
			modify:     func(q url.Values) { q.Del("code_challenge") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "plain method rejected",
			modify:     func(q url.Values) { q.Set("code_challenge_method", "plain") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "missing method rejected",
			modify:     func(q url.Values) { q.Del("code_challenge_method") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "malformed challenge",
			modify:     func(q url.Values) { q.Set("code_challenge", "too-short") },
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, store := newTestServer(t)
			client := registerTestClient(t, store, testRedirectURI)
			mux := http.NewServeMux()
			srv.Routes(mux)

			query := validAuthorizeQuery(client.ID, challenge)
			if tt.modify != nil {
				tt.modify(query)
			}

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/authorize?"+query.Encode(), nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeOAuthError(t, rec).Error)
				// Validation failures never redirect to the client.
				assert.Empty(t, rec.Header().Get("Location"))
				return
			}

			body := rec.Body.String()
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, body, client.Name)
			assert.Contains(t, body, `name="password"`)
			assert.Contains(t, body, challenge)
		})
	}
}

func postAuthorize(mux *http.ServeMux, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/authorize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleAuthorizeSubmit(t *testing.T) {
	t.Parallel()

	verifier := strings.Repeat("v", 50)
	challenge := s256Challenge(verifier)

	t.Run("correct password issues code", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		client := registerTestClient(t, store, testRedirectURI)
		mux := http.NewServeMux()
		srv.Routes(mux)

		form := validAuthorizeQuery(client.ID, challenge)
		form.Set("password", testPassword)

		rec := postAuthorize(mux, form)
		require.Equal(t, http.StatusFound, rec.Code)

		location, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "localhost:3000", location.Host)
		assert.Equal(t, "/callback", location.Path)
		assert.Equal(t, "xyz", location.Query().Get("state"))

		code := location.Query().Get("code")
		require.NotEmpty(t, code)

		grant, err := store.ConsumeAuthorizationCode(context.Background(), code)
		require.NoError(t, err)
		assert.Equal(t, client.ID, grant.ClientID)
		assert.Equal(t, challenge, grant.CodeChallenge)
		assert.Equal(t, testRedirectURI, grant.RedirectURI)
	})

	t.Run("wrong password re-renders form", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		client := registerTestClient(t, store, testRedirectURI)
		mux := http.NewServeMux()
		srv.Routes(mux)

		form := validAuthorizeQuery(client.ID, challenge)
		form.Set("password", "wrong")

		rec := postAuthorize(mux, form)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Incorrect password")
		assert.Contains(t, rec.Body.String(), `name="password"`)
		assert.Empty(t, rec.Header().Get("Location"))

		// No code was issued.
		assert.Zero(t, store.Stats().AuthorizationCodes)
	})

	t.Run("empty password re-renders form", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		client := registerTestClient(t, store, testRedirectURI)
		mux := http.NewServeMux()
		srv.Routes(mux)

		form := validAuthorizeQuery(client.ID, challenge)

		rec := postAuthorize(mux, form)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, store.Stats().AuthorizationCodes)
	})

	t.Run("tampered hidden fields are rejected", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		client := registerTestClient(t, store, testRedirectURI)
		mux := http.NewServeMux()
		srv.Routes(mux)

		form := validAuthorizeQuery(client.ID, challenge)
		form.Set("redirect_uri", "http://attacker.example.com/steal")
		form.Set("password", testPassword)

		rec := postAuthorize(mux, form)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", decodeOAuthError(t, rec).Error)
		assert.Zero(t, store.Stats().AuthorizationCodes)
	})

	t.Run("state omitted from redirect when absent", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		client := registerTestClient(t, store, testRedirectURI)
		mux := http.NewServeMux()
		srv.Routes(mux)

		form := validAuthorizeQuery(client.ID, challenge)
		form.Del("state")
		form.Set("password", testPassword)

		rec := postAuthorize(mux, form)
		require.Equal(t, http.StatusFound, rec.Code)

		location, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.False(t, location.Query().Has("state"))
		assert.NotEmpty(t, location.Query().Get("code"))
	})
}
