package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Keys lists every setting that can be written with SaveSetting.
var Keys = []string{
	"data.dir",
	"data.file",
	"source.url",
	"source.timeout",
	"launch.backend",
	"import.atomic",
	"telemetry.enabled",
	"telemetry.apiKey",
	"telemetry.endpoint",
	"verbose",
	"json",
}

// GlobalConfigPath returns ~/.tasknest/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// parseValue converts raw into the type stored for key.
func parseValue(key, raw string) (any, error) {
	switch key {
	case "import.atomic", "telemetry.enabled", "verbose", "json":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, raw)
		}
		return b, nil
	case "source.timeout":
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects a duration such as 30s, got %q", key, raw)
		}
		return d.String(), nil
	case "launch.backend":
		if raw != LaunchBackendFile && raw != LaunchBackendSQLite {
			return nil, fmt.Errorf("%s must be %q or %q", key, LaunchBackendFile, LaunchBackendSQLite)
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// SaveSetting writes key=value into the YAML config at path, keeping any
// other settings already in the file. The directory is created if needed.
func SaveSetting(path, key, value string) error {
	if path == "" {
		return fmt.Errorf("config path cannot be empty")
	}
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Read existing if any to preserve other settings
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.Set(key, parsed)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return os.Chmod(path, 0600)
}
