// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stacklok/memos-mcp/memos"
)

// registerTools declares the memo tools and binds their handlers.
func (s *Server) registerTools() {
	searchTool := mcp.NewTool("search_memos",
		mcp.WithDescription("Search for memos with optional filters"),
		mcp.WithString("query",
			mcp.Description("Text to search for in memo content"),
		),
		mcp.WithNumber("creator_id",
			mcp.Description("Filter by creator user ID"),
		),
		mcp.WithString("tag",
			mcp.Description("Filter by tag name"),
		),
		mcp.WithString("visibility",
			mcp.Description("Filter by visibility (PUBLIC, PROTECTED, PRIVATE)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of results to skip (default: 0)"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchMemos)

	createTool := mcp.NewTool("create_memo",
		mcp.WithDescription("Create a new memo"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The content of the memo (supports Markdown)"),
		),
		mcp.WithString("visibility",
			mcp.Description("Visibility level: PUBLIC, PROTECTED, or PRIVATE (default: PRIVATE)"),
		),
	)
	s.mcpServer.AddTool(createTool, s.handleCreateMemo)

	updateTool := mcp.NewTool("update_memo",
		mcp.WithDescription("Update an existing memo"),
		mcp.WithString("memo_uid",
			mcp.Required(),
			mcp.Description("The UID of the memo to update"),
		),
		mcp.WithString("content",
			mcp.Description("New content for the memo"),
		),
		mcp.WithString("visibility",
			mcp.Description("New visibility level: PUBLIC, PROTECTED, or PRIVATE"),
		),
		mcp.WithBoolean("pinned",
			mcp.Description("Whether to pin the memo"),
		),
	)
	s.mcpServer.AddTool(updateTool, s.handleUpdateMemo)

	getTool := mcp.NewTool("get_memo",
		mcp.WithDescription("Get a specific memo by its UID"),
		mcp.WithString("memo_uid",
			mcp.Required(),
			mcp.Description("The UID of the memo to retrieve"),
		),
	)
	s.mcpServer.AddTool(getTool, s.handleGetMemo)
}

// optionalString extracts a non-empty string argument when present.
func optionalString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// optionalInt extracts a numeric argument when present. JSON numbers
// arrive as float64.
func optionalInt(args map[string]any, key string) (int, bool) {
	if v, ok := args[key].(float64); ok {
		return int(v), true
	}
	return 0, false
}

func (s *Server) handleSearchMemos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	params := memos.SearchParams{
		Query: optionalString(args, "query"),
		Tag:   optionalString(args, "tag"),
	}
	if creatorID, ok := optionalInt(args, "creator_id"); ok {
		params.CreatorID = int64(creatorID)
	}
	if limit, ok := optionalInt(args, "limit"); ok {
		params.Limit = limit
	}
	if offset, ok := optionalInt(args, "offset"); ok {
		params.Offset = offset
	}
	if raw := optionalString(args, "visibility"); raw != "" {
		visibility, err := memos.ParseVisibility(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		params.Visibility = visibility
	}

	result, err := s.api.Search(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "memo search failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error searching memos: %v", err)), nil
	}

	return jsonResult(struct {
		Count         int          `json:"count"`
		Memos         []memos.Memo `json:"memos"`
		NextPageToken string       `json:"nextPageToken"`
	}{
		Count:         len(result.Memos),
		Memos:         result.Memos,
		NextPageToken: result.NextPageToken,
	})
}

func (s *Server) handleCreateMemo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required"), nil
	}

	visibility := memos.VisibilityPrivate
	if raw := optionalString(request.GetArguments(), "visibility"); raw != "" {
		visibility, err = memos.ParseVisibility(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	memo, err := s.api.Create(ctx, content, visibility)
	if err != nil {
		s.logger.ErrorContext(ctx, "memo creation failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error creating memo: %v", err)), nil
	}

	return jsonResult(struct {
		Success bool        `json:"success"`
		Memo    *memos.Memo `json:"memo"`
	}{Success: true, Memo: memo})
}

func (s *Server) handleUpdateMemo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, err := request.RequireString("memo_uid")
	if err != nil {
		return mcp.NewToolResultError("memo_uid argument is required"), nil
	}

	args := request.GetArguments()
	var patch memos.MemoPatch

	if v, ok := args["content"].(string); ok {
		patch.Content = &v
	}
	if raw, ok := args["visibility"].(string); ok {
		visibility, err := memos.ParseVisibility(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.Visibility = &visibility
	}
	if v, ok := args["pinned"].(bool); ok {
		patch.Pinned = &v
	}

	if patch.Empty() {
		return mcp.NewToolResultError("at least one field (content, visibility, or pinned) must be provided for update"), nil
	}

	memo, err := s.api.Update(ctx, uid, patch)
	if err != nil {
		s.logger.ErrorContext(ctx, "memo update failed", "memo_uid", uid, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error updating memo: %v", err)), nil
	}

	return jsonResult(struct {
		Success bool        `json:"success"`
		Memo    *memos.Memo `json:"memo"`
	}{Success: true, Memo: memo})
}

func (s *Server) handleGetMemo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, err := request.RequireString("memo_uid")
	if err != nil {
		return mcp.NewToolResultError("memo_uid argument is required"), nil
	}

	memo, err := s.api.Get(ctx, uid)
	if err != nil {
		s.logger.ErrorContext(ctx, "memo fetch failed", "memo_uid", uid, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error getting memo: %v", err)), nil
	}

	return jsonResult(memo)
}

// jsonResult renders a value as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
