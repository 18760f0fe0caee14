// Package config manages user-level settings stored at
// ~/.mcp-creator/config.yaml, overridable through MCP_CREATOR_* environment
// variables: the default output directory, the package index URL, the
// command timeout, logging, and the HTTP listen address for the MCP server.
package config
