package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ensureFreshTool returns the tool definition for ensure_fresh
func ensureFreshTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ensure_fresh",
		Description: "Ensure the chunk index for a project matches its working tree, rebuilding if stale or missing",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, rebuild even when the index looks fresh",
					"default":     false,
				},
				"project_type": map[string]interface{}{
					"type":        "string",
					"description": "Override auto-detection (android, ios, java, javascript, python, web)",
				},
				"workers": map[string]interface{}{
					"type":        "integer",
					"description": "Concurrent classification workers (default: number of CPUs)",
					"minimum":     1,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query the persisted index snapshot for a project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
				"project_type": map[string]interface{}{
					"type":        "string",
					"description": "Override auto-detection (android, ios, java, javascript, python, web)",
				},
			},
			Required: []string{"path"},
		},
	}
}

// detectProjectTypeTool returns the tool definition for detect_project_type
func detectProjectTypeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "detect_project_type",
		Description: "Detect a project's type from its indicator files without touching the index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
			},
			Required: []string{"path"},
		},
	}
}
