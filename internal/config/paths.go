package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// resolveDir returns override when set, otherwise base()/radar. When the base
// directory cannot be determined the current directory is used and a warning
// is returned.
func resolveDir(override string, base func() (string, error), kind string) (string, string) {
	if override != "" {
		return override, ""
	}

	dir, err := base()
	if err != nil || dir == "" {
		return ".", fmt.Sprintf("could not determine the %s directory, using ./", kind)
	}
	return filepath.Join(dir, AppDirName), ""
}

// userDataDir returns the per-user data directory: $XDG_DATA_HOME or
// ~/.local/share on Unix, ~/Library/Application Support on macOS and
// %APPDATA% on Windows.
func userDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", errors.New("%APPDATA% is not defined")
	case "darwin", "ios":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// EnsureDir creates dir and its parents. An existing directory is success.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
