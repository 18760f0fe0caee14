// Package profile persists the creator profile: whether setup is done, the
// creator's GitHub and PyPI usernames, a default output directory and the
// history of projects they have shipped. The profile is a small JSON file,
// by default ~/.mcp-creator/profile.json.
package profile
