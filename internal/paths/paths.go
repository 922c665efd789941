// Package paths resolves where agromind-mcp keeps its on-disk state.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// AppName is the application name used in paths.
	AppName = "agromind-mcp"

	// CacheFileName is the file name of the external crop lookup cache.
	CacheFileName = "openfarm-cache.json"

	// CacheDirEnv overrides the cache directory.
	CacheDirEnv = "AGROMIND_CACHE_DIR"
)

// CacheDir returns the cache directory based on platform and installation type.
//
// Resolution order:
//  1. AGROMIND_CACHE_DIR environment variable (if set)
//  2. Container-tools layout: {exe}/../../../var/cache/agromind-mcp/
//  3. Standalone layout: {exe}/../.cache/ (Linux/macOS)
//  4. Windows: %LOCALAPPDATA%\agromind-mcp\cache\
//
// The directory is created if needed and must be writable.
func CacheDir() (string, error) {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		if err := ensureWritableDir(dir); err != nil {
			return "", fmt.Errorf("%s is set but not writable: %w", CacheDirEnv, err)
		}
		return dir, nil
	}

	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to determine executable path: %w", err)
	}
	exePath, err = filepath.EvalSymlinks(exePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	exeDir := filepath.Dir(exePath)

	// /opt/container-tools/agromind-mcp/bin/agromind-mcp caches under
	// /opt/container-tools/var/cache/agromind-mcp/
	if isContainerToolsInstall(exePath) {
		root := filepath.Dir(filepath.Dir(exeDir))
		dir := filepath.Join(root, "var", "cache", AppName)
		if err := ensureWritableDir(dir); err != nil {
			return "", fmt.Errorf("container-tools cache directory not writable: %w", err)
		}
		return dir, nil
	}

	if runtime.GOOS == "windows" {
		return windowsCacheDir()
	}

	dir, err := filepath.Abs(filepath.Join(exeDir, "..", ".cache"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache path: %w", err)
	}
	if err := ensureWritableDir(dir); err != nil {
		return "", fmt.Errorf("cache directory not writable at %s: %w", dir, err)
	}
	return dir, nil
}

// CacheDirOrDefault returns CacheDir, falling back to ~/.agromind-mcp when the
// preferred location is unusable. The fallback is reported through warn.
func CacheDirOrDefault(warn func(err error)) string {
	dir, err := CacheDir()
	if err == nil {
		return dir
	}
	if warn != nil {
		warn(err)
	}

	home, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return "." + AppName
	}
	return filepath.Join(home, "."+AppName)
}

// DefaultCacheFile returns the default location of the lookup cache file.
func DefaultCacheFile(warn func(err error)) string {
	return filepath.Join(CacheDirOrDefault(warn), CacheFileName)
}

func windowsCacheDir() (string, error) {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return "", fmt.Errorf("LOCALAPPDATA environment variable not set")
	}

	dir := filepath.Join(localAppData, AppName, "cache")
	if err := ensureWritableDir(dir); err != nil {
		return "", fmt.Errorf("windows cache directory not writable: %w", err)
	}
	return dir, nil
}

func isContainerToolsInstall(exePath string) bool {
	return strings.Contains(filepath.ToSlash(exePath), "container-tools/")
}

// ensureWritableDir creates dir if needed and checks it accepts new files.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	probe := filepath.Join(dir, ".write-test")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	f.Close()
	os.Remove(probe)

	return nil
}
