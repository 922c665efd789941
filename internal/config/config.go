// Package config loads agromind-mcp settings.
//
// Sources are applied in increasing precedence: built-in defaults, a YAML
// file, AGROMIND_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/fundestpuente/agromind-mcp/internal/fetch"
	"github.com/fundestpuente/agromind-mcp/internal/paths"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig         = "AGROMIND_CONFIG"
	EnvCacheFile      = "AGROMIND_CACHE_FILE"
	EnvDataDir        = "AGROMIND_DATA_DIR"
	EnvLogLevel       = "AGROMIND_LOG_LEVEL"
	EnvLookupURL      = "AGROMIND_LOOKUP_URL"
	EnvLookupTimeout  = "AGROMIND_LOOKUP_TIMEOUT"
	EnvLookupDisabled = "AGROMIND_LOOKUP_DISABLED"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig    = "config"
	FlagCacheFile = "cache-file"
	FlagDataDir   = "data-dir"
	FlagLogLevel  = "log-level"
)

// ErrInvalidLogLevel is returned for a log level outside debug, info, warn and error.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config is the complete runtime configuration.
type Config struct {
	// CacheFile is the external lookup cache. Empty means the default
	// location under the cache directory.
	CacheFile string `yaml:"cache_file,omitempty"`

	// DataDir optionally overrides the embedded reference stores.
	DataDir string `yaml:"data_dir,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`

	Lookup LookupConfig `yaml:"lookup,omitempty"`
}

// LookupConfig controls the external crop lookup.
type LookupConfig struct {
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Disabled bool          `yaml:"disabled,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Lookup: LookupConfig{
			BaseURL: fetch.DefaultBaseURL,
			Timeout: fetch.DefaultTimeout,
		},
	}
}

// Load builds a configuration from defaults, the YAML file at path (if
// non-empty) and the environment. Flags are applied separately with
// ApplyFlags.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays AGROMIND_* variables onto c. Unset or empty variables
// are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvCacheFile); v != "" {
		c.CacheFile = v
	}
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLookupURL); v != "" {
		c.Lookup.BaseURL = v
	}
	if v := getenv(EnvLookupTimeout); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: expected seconds, got %q", EnvLookupTimeout, v)
		}
		c.Lookup.Timeout = time.Duration(secs * float64(time.Second))
	}
	if v := getenv(EnvLookupDisabled); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: expected a boolean, got %q", EnvLookupDisabled, v)
		}
		c.Lookup.Disabled = disabled
	}
	return nil
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to a YAML config file (env "+EnvConfig+")")
	fs.String(FlagCacheFile, "", "External lookup cache file (env "+EnvCacheFile+")")
	fs.String(FlagDataDir, "", "Directory with crops.json, troubleshooting.json and parameters.json overrides (env "+EnvDataDir+")")
	fs.String(FlagLogLevel, "", "Log level: debug, info, warn, error (env "+EnvLogLevel+")")
}

// ConfigPath returns the config file named by the --config flag, falling
// back to AGROMIND_CONFIG.
func ConfigPath(fs *pflag.FlagSet, getenv func(string) string) string {
	if fs.Changed(FlagConfig) {
		if v, err := fs.GetString(FlagConfig); err == nil {
			return v
		}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(EnvConfig)
}

// ApplyFlags overlays flags that were set explicitly on the command line.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	set := func(name string, dst *string) error {
		if !fs.Changed(name) {
			return nil
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	if err := set(FlagCacheFile, &c.CacheFile); err != nil {
		return err
	}
	if err := set(FlagDataDir, &c.DataDir); err != nil {
		return err
	}
	return set(FlagLogLevel, &c.LogLevel)
}

// Validate reports settings that would prevent the server from starting.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !c.Lookup.Disabled {
		if c.Lookup.Timeout <= 0 {
			return fmt.Errorf("lookup timeout must be positive, got %s", c.Lookup.Timeout)
		}
		if strings.TrimSpace(c.Lookup.BaseURL) == "" {
			return errors.New("lookup base URL is empty")
		}
	}
	return nil
}

// ResolveCacheFile returns CacheFile, or the default cache file location
// when none was configured.
func (c Config) ResolveCacheFile(warn func(error)) string {
	if c.CacheFile != "" {
		return c.CacheFile
	}
	return paths.DefaultCacheFile(warn)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}
