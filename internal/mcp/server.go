// ABOUTME: MCP server implementation for kaomoji
// ABOUTME: Exposes the kaomoji database to AI assistants over stdio
package mcp

import (
	"context"
	"time"

	"github.com/harper/kaomoji/internal/config"
	"github.com/harper/kaomoji/internal/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with kaomoji-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	cfg       config.Config
	now       func() time.Time
}

// NewServer creates a new kaomoji MCP server for the configured database.
func NewServer(cfg config.Config) *Server {
	impl := &mcp.Implementation{
		Name:    "kaomoji",
		Version: "0.1.0",
	}

	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		cfg:       cfg,
		now:       time.Now,
	}

	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

// open reads the database fresh for every request.
func (s *Server) open() (*db.Database, error) {
	return db.Open(s.cfg.DatabaseFilename)
}
