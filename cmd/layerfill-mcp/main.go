package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"layerfill/internal/adapters/document"
	"layerfill/internal/adapters/filesystem"
	mcpadapter "layerfill/internal/adapters/mcp"
	"layerfill/internal/adapters/sqlite"
	"layerfill/internal/config"
)

func main() {
	documentFlag := flag.String("document", config.DocumentPath(), "path to the design document")
	storeFlag := flag.String("store", config.StorePath(), "path to the image store database")
	levelFlag := flag.String("log-level", config.LogLevel(), "log level (debug, info, warn, error)")
	recursiveFlag := flag.Bool("recursive", false, "include images in subdirectories")
	flag.Parse()

	level, err := config.ParseLevel(*levelFlag)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(2)
	}
	// stdout carries the protocol; logs go to stderr
	logger := config.NewLogger(os.Stderr, level)

	doc, err := document.Open(*documentFlag)
	if err != nil {
		logger.Error("failed to open document", "error", err)
		os.Exit(1)
	}

	store := sqlite.NewStore()
	if err := store.Open(*storeFlag); err != nil {
		logger.Error("failed to open image store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	workspace := mcpadapter.NewWorkspace(doc, store, store, filesystem.NewImageLoader(*recursiveFlag), logger)

	mcpServer := server.NewMCPServer(
		"layerfill-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, workspace)

	logger.Info("serving", "document", doc.Path(), "store", store.Path())
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("layerfill-mcp stopped", "error", err)
		store.Close()
		os.Exit(1)
	}

	// Focus verification may have moved the viewport after the last save
	if doc.Dirty() {
		if err := doc.Save(); err != nil {
			logger.Error("failed to save document", "error", err)
		}
	}
}
