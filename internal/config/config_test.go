package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/fundestpuente/agromind-mcp/internal/fetch"
	"github.com/fundestpuente/agromind-mcp/internal/paths"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agromind.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Lookup.BaseURL != fetch.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.Lookup.BaseURL)
	}
	if cfg.Lookup.Timeout != fetch.DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Lookup.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
cache_file: /tmp/agro/cache.json
log_level: debug
lookup:
  base_url: http://localhost:8080/api/
  timeout: 2s
`)

	cfg, err := Load(path, envMap(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CacheFile != "/tmp/agro/cache.json" {
		t.Errorf("CacheFile = %q", cfg.CacheFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Lookup.BaseURL != "http://localhost:8080/api/" {
		t.Errorf("BaseURL = %q", cfg.Lookup.BaseURL)
	}
	if cfg.Lookup.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Lookup.Timeout)
	}
	// Keys missing from the file keep their defaults.
	if cfg.DataDir != "" || cfg.Lookup.Disabled {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil)); err == nil {
		t.Error("expected error for missing config file")
	}

	path := writeConfig(t, "lookup: [not, a, map]\n")
	if _, err := Load(path, envMap(nil)); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nlookup:\n  timeout: 2s\n")

	cfg, err := Load(path, envMap(map[string]string{
		EnvLogLevel:       "warn",
		EnvCacheFile:      "/var/cache/agro.json",
		EnvDataDir:        "/etc/agromind",
		EnvLookupURL:      "http://mirror/api/v1/",
		EnvLookupTimeout:  "0.5",
		EnvLookupDisabled: "true",
	}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		CacheFile: "/var/cache/agro.json",
		DataDir:   "/etc/agromind",
		LogLevel:  "warn",
		Lookup: LookupConfig{
			BaseURL:  "http://mirror/api/v1/",
			Timeout:  500 * time.Millisecond,
			Disabled: true,
		},
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"timeout not a number", map[string]string{EnvLookupTimeout: "soon"}},
		{"disabled not a bool", map[string]string{EnvLookupDisabled: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load("", envMap(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--log-level=error", "--data-dir", "/srv/data"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", envMap(map[string]string{
		EnvLogLevel:  "debug",
		EnvCacheFile: "/env/cache.json",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatalf("ApplyFlags() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want flag value", cfg.LogLevel)
	}
	if cfg.DataDir != "/srv/data" {
		t.Errorf("DataDir = %q, want flag value", cfg.DataDir)
	}
	// Unset flags leave lower layers alone.
	if cfg.CacheFile != "/env/cache.json" {
		t.Errorf("CacheFile = %q, want env value", cfg.CacheFile)
	}
}

func TestConfigPath(t *testing.T) {
	env := envMap(map[string]string{EnvConfig: "/env/agromind.yaml"})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if got := ConfigPath(fs, env); got != "/env/agromind.yaml" {
		t.Errorf("ConfigPath() = %q, want env value", got)
	}

	if err := fs.Parse([]string{"--config", "/flag/agromind.yaml"}); err != nil {
		t.Fatal(err)
	}
	if got := ConfigPath(fs, env); got != "/flag/agromind.yaml" {
		t.Errorf("ConfigPath() = %q, want flag value", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"zero timeout", func(c *Config) { c.Lookup.Timeout = 0 }, true},
		{"negative timeout", func(c *Config) { c.Lookup.Timeout = -time.Second }, true},
		{"empty base url", func(c *Config) { c.Lookup.BaseURL = " " }, true},
		{"disabled lookup skips lookup checks", func(c *Config) {
			c.Lookup.Disabled = true
			c.Lookup.Timeout = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLogLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLogLevel", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.input, got, err, tt.expected)
		}
	}
}

func TestResolveCacheFile(t *testing.T) {
	cfg := Default()
	cfg.CacheFile = "/explicit/cache.json"
	if got := cfg.ResolveCacheFile(nil); got != "/explicit/cache.json" {
		t.Errorf("ResolveCacheFile() = %q", got)
	}

	dir := t.TempDir()
	t.Setenv(paths.CacheDirEnv, dir)
	cfg.CacheFile = ""
	want := filepath.Join(dir, paths.CacheFileName)
	if got := cfg.ResolveCacheFile(nil); got != want {
		t.Errorf("ResolveCacheFile() = %q, want %q", got, want)
	}
}
