// Package scaffold assembles a complete MCP server project from a
// toolspec.Project. Build returns the tree as relative path to content;
// Generate writes that tree to disk under <outputDir>/<package_name> and
// reports the files written along with follow-up guidance.
//
// The layout produced here is relied upon by package mutate, which locates
// the entrypoint and per-tool files by the same path helpers.
package scaffold
