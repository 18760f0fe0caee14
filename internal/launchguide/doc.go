// Package launchguide writes LAUNCHGUIDE.md, the listing document
// submitted to the MCP Marketplace.
package launchguide
