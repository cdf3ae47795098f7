// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package memos provides a client for the Memos REST API.
//
// The client covers the memo operations the MCP tools need: searching
// with filter expressions, creating, fetching, and partially updating
// memos. All calls require a context and return wrapped errors carrying
// the upstream HTTP status code.
package memos

import (
	"fmt"
	"strings"
)

// Visibility is the audience of a memo.
type Visibility string

// Visibility levels recognized by the Memos API.
const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityProtected Visibility = "PROTECTED"
	VisibilityPrivate   Visibility = "PRIVATE"
)

// ParseVisibility converts a case-insensitive string into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToUpper(s)); v {
	case VisibilityPublic, VisibilityProtected, VisibilityPrivate:
		return v, nil
	default:
		return "", fmt.Errorf("invalid visibility %q: must be one of PUBLIC, PROTECTED, PRIVATE", s)
	}
}

// Memo is a single note as returned by the Memos API.
// Timestamps are kept as the RFC 3339 strings the API emits.
type Memo struct {
	Name        string     `json:"name"`
	UID         string     `json:"uid"`
	Creator     string     `json:"creator"`
	Content     string     `json:"content"`
	Visibility  Visibility `json:"visibility"`
	Pinned      bool       `json:"pinned"`
	CreateTime  string     `json:"createTime,omitempty"`
	UpdateTime  string     `json:"updateTime,omitempty"`
	DisplayTime string     `json:"displayTime,omitempty"`
	Snippet     string     `json:"snippet,omitempty"`
}

// SearchParams narrows a memo search. Zero values mean "no filter"
// for the optional fields; Limit defaults to 10 when unset.
type SearchParams struct {
	// Query matches against memo content.
	Query string
	// CreatorID filters by the numeric user ID of the author.
	CreatorID int64
	// Tag filters memos carrying the given tag.
	Tag string
	// Visibility filters by audience.
	Visibility Visibility
	// Limit caps the number of results per page.
	Limit int
	// Offset skips the first N results.
	Offset int
}

// SearchResult is one page of memos matching a search.
type SearchResult struct {
	Memos         []Memo `json:"memos"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// MemoPatch describes a partial update. Nil fields are left unchanged.
type MemoPatch struct {
	Content    *string
	Visibility *Visibility
	Pinned     *bool
}

// Empty reports whether the patch would change nothing.
func (p MemoPatch) Empty() bool {
	return p.Content == nil && p.Visibility == nil && p.Pinned == nil
}
