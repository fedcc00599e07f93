package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope/codescope-mcp/internal/indexer"
	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "codescope-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.codescope/indices"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	orch     *indexer.Orchestrator
	registry *profile.Registry
}

// NewServer creates a new MCP server instance. defaultWorkers sets the
// orchestrator's default build parallelism; zero keeps the CPU-count default.
func NewServer(dbPath string, defaultWorkers int) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".codescope", "indices")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// A single database file holds every project's snapshots, keyed by
	// (root_path, project_type).
	dbFile := filepath.Join(dbPath, "codescope.db")

	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	registry := profile.Default()

	orch := indexer.New(registry, store)
	orch.SetWorkers(defaultWorkers)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		storage:  store,
		orch:     orch,
		registry: registry,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(ensureFreshTool(), s.handleEnsureFresh)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	s.mcp.AddTool(detectProjectTypeTool(), s.handleDetectProjectType)
	return nil
}
