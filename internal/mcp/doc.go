// Package mcp exposes the index pipeline over the Model Context Protocol.
//
// Three tools are registered:
//
//   - ensure_fresh: detect the project type, check staleness, and rebuild
//     the chunk/entity index when needed. Returns the decision, the
//     added/modified/removed diff, and build statistics.
//   - get_status: report the persisted snapshot for a project (file,
//     chunk, and entity counts, last indexed commit).
//   - detect_project_type: run indicator-based detection only, without
//     touching the index.
//
// The server speaks stdio and is intended to be launched by an MCP client
// (Claude Desktop, editors). Tool responses are indented JSON for easy
// consumption by both models and humans.
package mcp
