// Package userdata resolves the per-user state directory (~/.mcp-creator)
// and the files kept in it: the creator profile and the config file.
// MCP_CREATOR_HOME relocates the whole directory, which tests rely on.
package userdata
