package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mcpcreator-labs/mcp-creator/internal/branding"
	"github.com/mcpcreator-labs/mcp-creator/internal/filewriter"
)

// File names inside the state directory.
const (
	ProfileFile = "profile.json"
	ConfigFile  = "config.yaml"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// GetRoot returns the state directory. It checks MCP_CREATOR_HOME first,
// then falls back to ~/.mcp-creator.
func GetRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetProfilePath returns the path of the creator profile. MCP_CREATOR_PROFILE
// overrides it directly.
func GetProfilePath() (string, error) {
	if v := os.Getenv(branding.EnvVar("PROFILE")); v != "" {
		return v, nil
	}
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ProfileFile), nil
}

// GetConfigPath returns the path of config.yaml.
func GetConfigPath() (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}

// EnsureRoot creates the state directory with owner-only permissions. It
// prints a line to w when the directory is created; w may be nil.
func EnsureRoot(w io.Writer) (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(root); err == nil {
		return root, nil
	}
	if err := os.MkdirAll(root, DirPermSecure); err != nil {
		return "", fmt.Errorf("creating %s: %w", root, err)
	}
	if err := filewriter.Chmod(root, DirPermSecure); err != nil {
		return "", err
	}
	if w != nil {
		fmt.Fprintf(w, "  Created %s\n", root)
	}
	return root, nil
}
