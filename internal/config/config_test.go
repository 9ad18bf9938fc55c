package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempGlobalDir points GetGlobalConfigDir at a temp dir for the test.
func useTempGlobalDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { GetGlobalConfigDir = orig })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := useTempGlobalDir(t)
	t.Setenv("XDG_DATA_HOME", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.Data.Dir)
	assert.Equal(t, DefaultDataFile, cfg.Data.File)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, DefaultSourceTimeout, cfg.Source.Timeout)
	assert.Equal(t, LaunchBackendFile, cfg.Launch.Backend)
	assert.False(t, cfg.Import.Atomic)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.Config, "no config file was read")
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := useTempGlobalDir(t)
	content := `
data:
  dir: /var/lib/tasknest
source:
  url: http://localhost:9000/todos
  timeout: 5s
launch:
  backend: sqlite
import:
  atomic: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tasknest", cfg.Data.Dir)
	assert.Equal(t, "http://localhost:9000/todos", cfg.Source.URL)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, LaunchBackendSQLite, cfg.Launch.Backend)
	assert.True(t, cfg.Import.Atomic)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.Config)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := useTempGlobalDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("launch:\n  backend: sqlite\n"), 0600))

	t.Setenv("TASKNEST_LAUNCH_BACKEND", "file")
	t.Setenv("TASKNEST_IMPORT_ATOMIC", "true")
	t.Setenv("TASKNEST_DATA_DIR", "/tmp/elsewhere")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, LaunchBackendFile, cfg.Launch.Backend)
	assert.True(t, cfg.Import.Atomic)
	assert.Equal(t, "/tmp/elsewhere", cfg.Data.Dir)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	useTempGlobalDir(t)

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad backend", map[string]string{"TASKNEST_LAUNCH_BACKEND": "registry"}},
		{"bad url", map[string]string{"TASKNEST_SOURCE_URL": "not a url"}},
		{"zero timeout", map[string]string{"TASKNEST_SOURCE_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempGlobalDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(viper.New(), "")
			assert.Error(t, err)
		})
	}
}

func TestDefaultDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	assert.Equal(t, filepath.Join("/xdg/data", AppName), DefaultDataDir())
}

func TestDatabasePath(t *testing.T) {
	cfg := &AppConfig{Data: DataConfig{Dir: "/data", File: "tasks.db"}}
	assert.Equal(t, filepath.Join("/data", "tasks.db"), cfg.DatabasePath())

	cfg.Data.File = "/abs/other.db"
	assert.Equal(t, "/abs/other.db", cfg.DatabasePath())

	cfg.Data.File = ":memory:"
	assert.Equal(t, ":memory:", cfg.DatabasePath())

	cfg.Data.File = "tasks.db"
	assert.Equal(t, filepath.Join("/data", ".launched"), cfg.LaunchMarkerPath())
	assert.Equal(t, filepath.Join("/data", "crash_logs"), cfg.CrashLogDir())
}
