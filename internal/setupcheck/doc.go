// Package setupcheck inspects the local machine for the tools a creator
// needs to build and publish a server: python3, uv, git, the GitHub CLI
// and a PyPI upload token.
package setupcheck
