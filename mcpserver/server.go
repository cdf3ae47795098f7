// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package mcpserver exposes the Memos knowledge base as MCP tools over
// the Streamable HTTP transport.
package mcpserver

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=server.go -destination=mocks/mock_api.go -package=mocks MemosAPI

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/stacklok/memos-mcp/memos"
)

const (
	serverName    = "memos"
	serverVersion = "0.1.0"
)

// MemosAPI is the slice of the Memos client the tools depend on.
type MemosAPI interface {
	Search(ctx context.Context, params memos.SearchParams) (*memos.SearchResult, error)
	Create(ctx context.Context, content string, visibility memos.Visibility) (*memos.Memo, error)
	Get(ctx context.Context, uid string) (*memos.Memo, error)
	Update(ctx context.Context, uid string, patch memos.MemoPatch) (*memos.Memo, error)
}

// Server wires the memo tools into an MCP server.
type Server struct {
	api       MemosAPI
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// New creates a Server backed by the given Memos API client.
func New(api MemosAPI, logger *slog.Logger) (*Server, error) {
	if api == nil {
		return nil, fmt.Errorf("memos API client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		api:    api,
		logger: logger,
		mcpServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s, nil
}

// Handler returns the Streamable HTTP handler serving the MCP endpoint.
// The handler expects to be mounted at /mcp.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer)
}
