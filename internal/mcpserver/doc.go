// Package mcpserver exposes the creator workflow as an MCP server. Every
// tool returns its result as indented JSON text so assistants can read
// success flags and next steps directly.
package mcpserver
