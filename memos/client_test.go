// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/memos-mcp/httperr"
)

const testToken = "svc-token-123"

// newTestClient starts a stub Memos API and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, testToken)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty base URL", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("", "")
		assert.Error(t, err)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("ftp://memos.example.com", "")
		assert.Error(t, err)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient("http://localhost:5230/", "")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:5230", c.baseURL)
	})
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	t.Run("builds query parameters", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/memos", r.URL.Path)
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))

			q := r.URL.Query()
			assert.Equal(t, "5", q.Get("pageSize"))
			assert.Equal(t, "offset=10", q.Get("pageToken"))
			assert.Equal(t, `content.contains("weekly") && visibility == "PUBLIC"`, q.Get("filter"))

			_ = json.NewEncoder(w).Encode(SearchResult{
				Memos:         []Memo{{UID: "abc123", Content: "weekly notes"}},
				NextPageToken: "offset=15",
			})
		})

		result, err := client.Search(context.Background(), SearchParams{
			Query:      "weekly",
			Visibility: VisibilityPublic,
			Limit:      5,
			Offset:     10,
		})
		require.NoError(t, err)
		require.Len(t, result.Memos, 1)
		assert.Equal(t, "abc123", result.Memos[0].UID)
		assert.Equal(t, "offset=15", result.NextPageToken)
	})

	t.Run("defaults apply", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "10", q.Get("pageSize"))
			assert.False(t, q.Has("pageToken"))
			assert.False(t, q.Has("filter"))
			_ = json.NewEncoder(w).Encode(SearchResult{})
		})

		result, err := client.Search(context.Background(), SearchParams{})
		require.NoError(t, err)
		assert.Empty(t, result.Memos)
	})
}

func TestClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("posts content and visibility", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/memos", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "hello world", body["content"])
			assert.Equal(t, "PROTECTED", body["visibility"])

			_ = json.NewEncoder(w).Encode(Memo{
				Name:       "memos/xyz",
				UID:        "xyz",
				Content:    "hello world",
				Visibility: VisibilityProtected,
			})
		})

		memo, err := client.Create(context.Background(), "hello world", VisibilityProtected)
		require.NoError(t, err)
		assert.Equal(t, "xyz", memo.UID)
		assert.Equal(t, VisibilityProtected, memo.Visibility)
	})

	t.Run("defaults to private", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "PRIVATE", body["visibility"])
			_ = json.NewEncoder(w).Encode(Memo{UID: "p"})
		})

		_, err := client.Create(context.Background(), "note", "")
		require.NoError(t, err)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("no request should be sent")
		})

		_, err := client.Create(context.Background(), "", VisibilityPrivate)
		assert.Error(t, err)
	})
}

func TestClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/memos/abc123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Memo{
			UID:     "abc123",
			Content: "found it",
			Snippet: "found…",
		})
	})

	memo, err := client.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "found it", memo.Content)
	assert.Equal(t, "found…", memo.Snippet)
}

func TestClient_Update(t *testing.T) {
	t.Parallel()

	t.Run("sends only set fields plus state", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/v1/memos/abc123", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "STATE_UNSPECIFIED", body["state"])
			assert.Equal(t, true, body["pinned"])
			assert.NotContains(t, body, "content")
			assert.NotContains(t, body, "visibility")

			_ = json.NewEncoder(w).Encode(Memo{UID: "abc123", Pinned: true})
		})

		pinned := true
		memo, err := client.Update(context.Background(), "abc123", MemoPatch{Pinned: &pinned})
		require.NoError(t, err)
		assert.True(t, memo.Pinned)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("no request should be sent")
		})

		_, err := client.Update(context.Background(), "abc123", MemoPatch{})
		assert.ErrorIs(t, err, ErrEmptyPatch)
	})

	t.Run("empty UID rejected", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("no request should be sent")
		})

		content := "x"
		_, err := client.Update(context.Background(), "", MemoPatch{Content: &content})
		assert.Error(t, err)
	})
}

func TestClient_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream failure", tt.status)
			})

			_, err := client.Get(context.Background(), "missing")
			require.Error(t, err)
			assert.Equal(t, tt.status, httperr.Code(err))
			assert.Contains(t, err.Error(), "upstream failure")
		})
	}
}

func TestClient_NoTokenOmitsAuthorization(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(SearchResult{})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchParams{})
	require.NoError(t, err)
}
