// Package branding holds the names mcp-creator is known by: the command
// name, its state directory and its environment prefix. They are read once
// from the embedded branding.yaml.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawIdentity []byte

type identity struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	RegistryURL string `yaml:"registry_url"`
}

// current decodes branding.yaml over built-in values, so a field missing
// from the file keeps its default.
var current = sync.OnceValue(func() identity {
	id := identity{
		CLIName:     "mcp-creator",
		DisplayName: "MCP Creator",
		Description: "Scaffold, build and publish MCP servers",
		HomeDir:     ".mcp-creator",
		EnvPrefix:   "MCP_CREATOR",
		RegistryURL: "https://pypi.org",
	}
	_ = yaml.Unmarshal(rawIdentity, &id)
	return id
})

func CLIName() string     { return current().CLIName }
func DisplayName() string { return current().DisplayName }
func Description() string { return current().Description }

// HomeDir is the state directory name under $HOME.
func HomeDir() string { return current().HomeDir }

func EnvPrefix() string { return current().EnvPrefix }

// RegistryURL is the package index used when registry_url is unset.
func RegistryURL() string { return current().RegistryURL }

// EnvVar prefixes suffix for the environment: EnvVar("home") is
// MCP_CREATOR_HOME.
func EnvVar(suffix string) string {
	return current().EnvPrefix + "_" + strings.ToUpper(suffix)
}
