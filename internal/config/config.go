package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	JSON      bool            `mapstructure:"json"`
	Config    string          `mapstructure:"config"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	Source    SourceConfig    `mapstructure:"source" validate:"required"`
	Launch    LaunchConfig    `mapstructure:"launch" validate:"required"`
	Import    ImportConfig    `mapstructure:"import"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir  string `mapstructure:"dir" validate:"required"`
	File string `mapstructure:"file" validate:"required"`
}

// SourceConfig describes the first-launch import endpoint.
type SourceConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// LaunchConfig selects where the first-launch flag is kept.
type LaunchConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
}

// ImportConfig tunes how imported tasks are saved.
type ImportConfig struct {
	// Atomic saves the whole import in one transaction.
	Atomic bool `mapstructure:"atomic"`
}

// TelemetryConfig is the config-file side of telemetry. Consent itself lives
// in telemetry.json; Enabled=false here turns telemetry off regardless.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// validate caches struct info
var validate = validator.New()

// Validate checks cfg against its struct tags.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SetDefaults registers every known key on v. AutomaticEnv only resolves keys
// viper already knows about, so each setting needs a default here.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("json", false)
	v.SetDefault("data.dir", DefaultDataDir())
	v.SetDefault("data.file", DefaultDataFile)
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.timeout", DefaultSourceTimeout)
	v.SetDefault("launch.backend", DefaultLaunchBackend)
	v.SetDefault("import.atomic", false)
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.apiKey", "")
	v.SetDefault("telemetry.endpoint", DefaultTelemetryEndpoint)
}

// Load reads configuration into v and returns the validated result.
// Sources, lowest priority first: defaults, the config file (cfgFile or
// ~/.tasknest/config.yaml), .env, TASKNEST_* environment, bound flags.
// A missing default config file is fine; a missing explicit one is an error.
func Load(v *viper.Viper, cfgFile string) (*AppConfig, error) {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := GetGlobalConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, ".yaml"))
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || cfgFile != "" {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Config = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
