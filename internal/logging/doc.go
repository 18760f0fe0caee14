// Package logging builds the structured loggers used across mcp-creator.
package logging
