// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// memos-mcp serves the Memos knowledge base as MCP tools over Streamable
// HTTP, guarded by an embedded OAuth 2.0 authorization server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/memos-mcp/authserver"
	"github.com/stacklok/memos-mcp/authserver/storage"
	"github.com/stacklok/memos-mcp/config"
	"github.com/stacklok/memos-mcp/env"
	"github.com/stacklok/memos-mcp/logger"
	"github.com/stacklok/memos-mcp/logging"
	"github.com/stacklok/memos-mcp/mcpserver"
	"github.com/stacklok/memos-mcp/memos"
	"github.com/stacklok/memos-mcp/recovery"
)

const (
	resourceName = "memos-mcp"

	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	logger.Initialize()

	if err := run(); err != nil {
		logger.Fatalf("memos-mcp: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath, &env.OSReader{})
	if err != nil {
		return err
	}

	slogger := logging.New()

	store := storage.NewMemory()
	defer store.Close()

	authSrv, err := authserver.New(authserver.Config{
		Issuer:         cfg.PublicURL,
		Password:       cfg.Password,
		AccessTokenTTL: cfg.TokenTTL(),
		ResourceName:   resourceName,
	}, store, slogger)
	if err != nil {
		return err
	}

	memosClient, err := memos.NewClient(cfg.MemosBaseURL, cfg.MemosAPIToken)
	if err != nil {
		return err
	}

	mcpSrv, err := mcpserver.New(memosClient, slogger)
	if err != nil {
		return err
	}

	mux := newMux(authSrv, mcpSrv.Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           recovery.MiddlewareWithLogger(slogger)(mux),
		ReadHeaderTimeout: readHeaderTimeout,
		// No write timeout: MCP sessions stream responses.
		IdleTimeout: idleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Infof("memos-mcp listening on %s (public URL %s)", cfg.ListenAddr(), cfg.PublicURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// newMux assembles the route table: the health probe and OAuth endpoints
// are public, the MCP endpoint requires a bearer token.
func newMux(authSrv *authserver.Server, mcpHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	authSrv.Routes(mux)
	mux.Handle("/mcp", authSrv.RequireToken(mcpHandler))
	return mux
}
