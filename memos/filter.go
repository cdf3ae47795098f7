// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memos

import (
	"fmt"
	"strings"
)

// escapeFilterString makes a value safe for embedding in a double-quoted
// filter literal. Backslashes must be escaped before quotes.
func escapeFilterString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// buildFilter assembles the Memos filter expression for a search.
// Individual conditions are joined with the AND operator. An empty
// string means no filtering.
func buildFilter(params SearchParams) string {
	var parts []string

	if params.CreatorID > 0 {
		parts = append(parts, fmt.Sprintf("creator_id == %d", params.CreatorID))
	}
	if params.Query != "" {
		parts = append(parts, fmt.Sprintf(`content.contains("%s")`, escapeFilterString(params.Query)))
	}
	if params.Tag != "" {
		parts = append(parts, fmt.Sprintf(`tag in ["%s"]`, escapeFilterString(params.Tag)))
	}
	if params.Visibility != "" {
		parts = append(parts, fmt.Sprintf(`visibility == "%s"`, params.Visibility))
	}

	return strings.Join(parts, " && ")
}
