// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stacklok/memos-mcp/httperr"
)

const (
	// DefaultTimeout bounds every request to the Memos API.
	DefaultTimeout = 30 * time.Second

	apiBasePath = "/api/v1"

	defaultPageSize = 10

	// maxErrorBodyBytes caps how much of an upstream error body is
	// carried into the returned error message.
	maxErrorBodyBytes = 512
)

// ErrEmptyPatch is returned by Update when the patch has no fields set.
var ErrEmptyPatch = errors.New("at least one of content, visibility, or pinned must be set")

// Client talks to a Memos instance over its REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Useful for tests
// and for callers that need custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the Memos instance at baseURL.
// The token, when non-empty, is sent as a bearer credential on every
// request.
func NewClient(baseURL, token string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search returns one page of memos matching the given parameters.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(limit))
	if filter := buildFilter(params); filter != "" {
		query.Set("filter", filter)
	}
	if params.Offset > 0 {
		query.Set("pageToken", fmt.Sprintf("offset=%d", params.Offset))
	}

	var result SearchResult
	if err := c.do(ctx, http.MethodGet, "/memos", query, nil, &result); err != nil {
		return nil, fmt.Errorf("searching memos: %w", err)
	}
	return &result, nil
}

// Create stores a new memo with the given content and visibility.
func (c *Client) Create(ctx context.Context, content string, visibility Visibility) (*Memo, error) {
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}

	body := map[string]any{
		"content":    content,
		"visibility": visibility,
	}

	var memo Memo
	if err := c.do(ctx, http.MethodPost, "/memos", nil, body, &memo); err != nil {
		return nil, fmt.Errorf("creating memo: %w", err)
	}
	return &memo, nil
}

// Get fetches a single memo by its UID.
func (c *Client) Get(ctx context.Context, uid string) (*Memo, error) {
	if uid == "" {
		return nil, fmt.Errorf("memo UID is required")
	}

	var memo Memo
	if err := c.do(ctx, http.MethodGet, "/memos/"+url.PathEscape(uid), nil, nil, &memo); err != nil {
		return nil, fmt.Errorf("getting memo %q: %w", uid, err)
	}
	return &memo, nil
}

// updateRequest is the PATCH body for a partial memo update. The API
// expects the state field to be present even when unchanged.
type updateRequest struct {
	State      string      `json:"state"`
	Content    *string     `json:"content,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
	Pinned     *bool       `json:"pinned,omitempty"`
}

// Update applies a partial update to the memo with the given UID.
// The patch must set at least one field.
func (c *Client) Update(ctx context.Context, uid string, patch MemoPatch) (*Memo, error) {
	if uid == "" {
		return nil, fmt.Errorf("memo UID is required")
	}
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}

	body := updateRequest{
		State:      "STATE_UNSPECIFIED",
		Content:    patch.Content,
		Visibility: patch.Visibility,
		Pinned:     patch.Pinned,
	}

	var memo Memo
	if err := c.do(ctx, http.MethodPatch, "/memos/"+url.PathEscape(uid), nil, body, &memo); err != nil {
		return nil, fmt.Errorf("updating memo %q: %w", uid, err)
	}
	return &memo, nil
}

// do issues a single API request and decodes the JSON response into out.
// Non-2xx responses become errors carrying the upstream status code.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + apiBasePath + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return httperr.WithCode(
			fmt.Errorf("memos API returned %s: %s", resp.Status, strings.TrimSpace(string(detail))),
			resp.StatusCode,
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
