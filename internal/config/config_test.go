package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("MCP_CREATOR_HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	setup(t)
	Load()

	if got := RegistryURL(); got != "https://pypi.org" {
		t.Errorf("RegistryURL() = %q", got)
	}
	if got := CommandTimeout(); got != 120*time.Second {
		t.Errorf("CommandTimeout() = %v", got)
	}
	if got := HTTPAddr(); got != ":8000" {
		t.Errorf("HTTPAddr() = %q", got)
	}
	if got := LogFormat(); got != "console" {
		t.Errorf("LogFormat() = %q", got)
	}
	if got := OutputDir(); got != "." {
		t.Errorf("OutputDir() = %q", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	setup(t)
	t.Setenv("MCP_CREATOR_REGISTRY_URL", "https://test.pypi.org")
	t.Setenv("MCP_CREATOR_COMMAND_TIMEOUT", "30")
	Load()

	if got := RegistryURL(); got != "https://test.pypi.org" {
		t.Errorf("RegistryURL() = %q", got)
	}
	if got := CommandTimeout(); got != 30*time.Second {
		t.Errorf("CommandTimeout() = %v", got)
	}
}

func TestSet_WritesFile(t *testing.T) {
	home := setup(t)
	Load()

	if err := Set(KeyOutputDir, "/projects"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := Get(KeyOutputDir); got != "/projects" {
		t.Errorf("Get() = %q", got)
	}

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "output_dir: /projects") {
		t.Errorf("config file content:\n%s", data)
	}

	// A fresh load reads the persisted value.
	viper.Reset()
	Load()
	if got := OutputDir(); got != "/projects" {
		t.Errorf("OutputDir() after reload = %q", got)
	}
}

func TestSet_Rejects(t *testing.T) {
	setup(t)
	Load()

	if err := Set("mirror", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := Set(KeyCommandTimeout, "soon"); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 6 || keys[0] != KeyCommandTimeout {
		t.Errorf("Keys() = %v", keys)
	}
	if !IsKnownKey(KeyHTTPAddr) || IsKnownKey("nope") {
		t.Error("IsKnownKey mismatch")
	}
}
