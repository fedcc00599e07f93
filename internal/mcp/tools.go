package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codescope/codescope-mcp/internal/indexer"
	"github.com/codescope/codescope-mcp/internal/profile"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeUnknownProjectType = -32001 // No profile matches the project
	ErrorCodeIndexingInProgress = -32002 // Another build is already running
)

// handleEnsureFresh handles the ensure_fresh tool invocation
func (s *Server) handleEnsureFresh(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	opts := &indexer.Options{
		Force:       getBoolDefault(args, "force", false),
		ProjectType: getStringDefault(args, "project_type", ""),
		Workers:     getIntDefault(args, "workers", 0),
	}

	result, err := s.orch.EnsureFresh(ctx, path, opts)
	if errors.Is(err, indexer.ErrIndexingInProgress) {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "another build is already running", nil)
	}
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, newMCPError(ErrorCodeUnknownProjectType, "no profile matches this project", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "build failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"path":         result.RootPath,
		"project_type": result.ProjectType,
		"decision":     string(result.Decision),
		"changes": map[string]interface{}{
			"added":    result.Changes.Added,
			"modified": result.Changes.Modified,
			"removed":  result.Changes.Removed,
		},
		"statistics": map[string]interface{}{
			"files_scanned":  result.Stats.FilesScanned,
			"files_indexed":  result.Stats.FilesIndexed,
			"files_failed":   result.Stats.FilesFailed,
			"chunks_created": result.Stats.ChunksCreated,
			"entities_found": result.Stats.EntitiesFound,
			"duration_ms":    result.Stats.Duration.Milliseconds(),
		},
	}

	if len(result.Warnings) > 0 {
		// Include first few warnings
		warnings := result.Warnings
		if len(warnings) > 5 {
			response["warnings"] = warnings[:5]
			response["warning_count"] = len(warnings)
		} else {
			response["warnings"] = warnings
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	projectType := getStringDefault(args, "project_type", "")
	if projectType == "" {
		projectType = s.registry.DetectType(path)
	}

	status, err := s.storage.GetStatus(ctx, path, projectType)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"path":         path,
		"project_type": projectType,
		"indexed":      status.Exists,
	}
	if status.Exists {
		response["statistics"] = map[string]interface{}{
			"files_count":    status.FileCount,
			"chunks_count":   status.ChunkCount,
			"entities_count": status.EntityCount,
		}
		response["last_commit"] = status.LastCommit
		response["updated_at"] = status.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
		if files := s.trackedFiles(ctx, path, projectType); len(files) > 0 {
			response["files"] = files
		}
	} else {
		response["message"] = "Project not indexed. Use the ensure_fresh tool to build the index."
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// trackedFiles lists a snapshot's paths with the profile's priority files
// first, each group sorted. Status consumers read the most important files
// from the top.
func (s *Server) trackedFiles(ctx context.Context, path, projectType string) []string {
	prof, err := s.registry.Get(projectType)
	if err != nil {
		return nil
	}
	snap, err := s.storage.GetSnapshot(ctx, path, projectType)
	if err != nil {
		return nil
	}

	var priority, rest []string
	for rel := range snap.Files {
		if prof.IsPriorityPath(rel) {
			priority = append(priority, rel)
		} else {
			rest = append(rest, rel)
		}
	}
	sort.Strings(priority)
	sort.Strings(rest)
	return append(priority, rest...)
}

// handleDetectProjectType handles the detect_project_type tool invocation
func (s *Server) handleDetectProjectType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	detected := s.registry.DetectType(path)
	response := map[string]interface{}{
		"path":         path,
		"project_type": detected,
		"known":        detected != profile.TypeUnknown,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// requirePath extracts and validates the path argument shared by all tools.
func requirePath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if err := validatePath(path); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return path, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is an accessible directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
