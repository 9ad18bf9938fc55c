package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.tasknest).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// DefaultDataDir returns where the database lives when data.dir is not set.
// Resolution order (first match wins):
// 1. XDG_DATA_HOME/tasknest (if XDG_DATA_HOME is set)
// 2. ~/.tasknest/data
// 3. ./.tasknest (no home directory)
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return GlobalDirName
	}
	return filepath.Join(dir, "data")
}

// DatabasePath joins data.dir and data.file. An absolute data.file, or the
// in-memory name, is returned unchanged.
func (c *AppConfig) DatabasePath() string {
	if c.Data.File == ":memory:" || filepath.IsAbs(c.Data.File) {
		return c.Data.File
	}
	return filepath.Join(c.Data.Dir, c.Data.File)
}

// LaunchMarkerPath is the marker file used by the file launch backend.
func (c *AppConfig) LaunchMarkerPath() string {
	return filepath.Join(c.Data.Dir, ".launched")
}

// CrashLogDir is where crash reports are written.
func (c *AppConfig) CrashLogDir() string {
	return filepath.Join(c.Data.Dir, "crash_logs")
}
