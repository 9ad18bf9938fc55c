// Package telemetry sends anonymous usage events for tasknest. It is off
// until the user runs `tasknest telemetry enable`.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/josephgoksu/tasknest/internal/config"
)

// ConfigFileName is the name of the telemetry state file.
const ConfigFileName = "telemetry.json"

// Config holds the user's telemetry choice.
// Stored at ~/.tasknest/telemetry.json, separate from config.yaml.
type Config struct {
	Enabled bool `json:"enabled"`

	// AnonymousID is a random UUID generated once and never tied to the user.
	AnonymousID string `json:"anonymous_id"`

	// UpdatedAt is when the choice was last changed.
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

var (
	configDirOverride   string
	configDirOverrideMu sync.RWMutex
)

// SetConfigDir sets a custom directory for the state file (for testing).
// Pass empty string to reset to default behavior.
func SetConfigDir(dir string) {
	configDirOverrideMu.Lock()
	defer configDirOverrideMu.Unlock()
	configDirOverride = dir
}

func getConfigDir() (string, error) {
	configDirOverrideMu.RLock()
	override := configDirOverride
	configDirOverrideMu.RUnlock()

	if override != "" {
		return override, nil
	}
	return config.GetGlobalConfigDir()
}

// GetConfigPath returns the full path to the telemetry state file.
func GetConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the telemetry state. A missing file yields a disabled config
// with a fresh anonymous ID.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.New().String()
	}
	return cfg, nil
}

// Save writes the state file with owner-only permissions.
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Enable turns on telemetry.
func (c *Config) Enable() {
	c.Enabled = true
	c.UpdatedAt = time.Now().UTC()
}

// Disable turns off telemetry.
func (c *Config) Disable() {
	c.Enabled = false
	c.UpdatedAt = time.Now().UTC()
}

// IsEnabled reports whether events may be sent. DO_NOT_TRACK in the
// environment always wins.
func (c *Config) IsEnabled() bool {
	if doNotTrack() {
		return false
	}
	return c.Enabled
}

func doNotTrack() bool {
	v := os.Getenv("DO_NOT_TRACK")
	if v == "" {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err != nil || on
}
