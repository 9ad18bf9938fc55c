// Package config provides centralized configuration for tasknest.
// All default values are defined here so there is a single source of truth.
package config

import "time"

const (
	// AppName is used for directory names and the environment prefix.
	AppName = "tasknest"

	// EnvPrefix prefixes every environment override, e.g. TASKNEST_SOURCE_URL.
	EnvPrefix = "TASKNEST"

	// GlobalDirName is the per-user directory under $HOME.
	GlobalDirName = ".tasknest"

	// ConfigFileName is the YAML file read from the global directory.
	ConfigFileName = "config.yaml"
)

// Launch flag backends
const (
	// LaunchBackendFile keeps the first-launch marker as a file in the data dir.
	LaunchBackendFile = "file"

	// LaunchBackendSQLite keeps the marker in the task database.
	LaunchBackendSQLite = "sqlite"
)

const (
	// DefaultDataFile is the database file name inside data.dir.
	DefaultDataFile = "tasks.db"

	// DefaultSourceURL is the remote list imported on first launch.
	DefaultSourceURL = "https://dummyjson.com/todos"

	// DefaultSourceTimeout bounds the first-launch fetch.
	DefaultSourceTimeout = 30 * time.Second

	// DefaultLaunchBackend selects the marker file.
	DefaultLaunchBackend = LaunchBackendFile

	// DefaultTelemetryEndpoint is the PostHog cloud endpoint.
	DefaultTelemetryEndpoint = "https://us.i.posthog.com"
)
