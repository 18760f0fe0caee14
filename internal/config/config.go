package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mcpcreator-labs/mcp-creator/internal/branding"
	"github.com/mcpcreator-labs/mcp-creator/internal/userdata"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeyOutputDir      = "output_dir"
	KeyRegistryURL    = "registry_url"
	KeyCommandTimeout = "command_timeout"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyHTTPAddr       = "http_addr"
)

var defaults = map[string]any{
	KeyOutputDir:      ".",
	KeyRegistryURL:    branding.RegistryURL(),
	KeyCommandTimeout: 120,
	KeyLogLevel:       "info",
	KeyLogFormat:      "console",
	KeyHTTPAddr:       ":8000",
}

// Keys returns the known config keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a recognised setting.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys(), key)
}

// Dir returns the path to the config directory (~/.mcp-creator/).
func Dir() string {
	root, err := userdata.GetRoot()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return root
}

// FilePath returns the full path to the config file (~/.mcp-creator/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, userdata.DirPermSecure); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if key == KeyCommandTimeout {
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%s must be a number of seconds: %w", key, err)
		}
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ─── Typed accessors ──────────────────────────────────────────────

// OutputDir returns the default parent directory for new projects.
func OutputDir() string { return viper.GetString(KeyOutputDir) }

// RegistryURL returns the package index base URL.
func RegistryURL() string { return viper.GetString(KeyRegistryURL) }

// CommandTimeout returns the per-command timeout.
func CommandTimeout() time.Duration {
	secs := viper.GetInt(KeyCommandTimeout)
	if secs <= 0 {
		secs = defaults[KeyCommandTimeout].(int)
	}
	return time.Duration(secs) * time.Second
}

// LogLevel returns the configured log level.
func LogLevel() string { return viper.GetString(KeyLogLevel) }

// LogFormat returns "console" or "json".
func LogFormat() string { return viper.GetString(KeyLogFormat) }

// HTTPAddr returns the listen address for the streamable HTTP transport.
func HTTPAddr() string { return viper.GetString(KeyHTTPAddr) }
