// Package codegen renders the files of a generated MCP server project.
//
// Every Render function is pure: the same input always yields byte-identical
// output and nothing touches the filesystem. The mutator depends on this to
// reproduce exactly the per-tool files a fresh generation would have written.
// Fixed documents (pyproject.toml, .gitignore, transport.py, Dockerfile) are
// text/template files under templates/; code files are assembled line by line.
package codegen
