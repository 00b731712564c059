package config

import "time"

// Config is the root configuration structure for the engine binaries.
type Config struct {
	// Profiles configures where discipline profiles are loaded from.
	Profiles ProfilesConfig `yaml:"profiles"`

	// Archive configures incident archival and retention.
	Archive ArchiveConfig `yaml:"archive"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProfilesConfig configures the discipline profile source.
type ProfilesConfig struct {
	// Path is a profile YAML file or a directory of profile files.
	// Default: "./profiles"
	Path string `yaml:"path"`

	// Watch enables live reload of profiles when files change.
	// Default: false
	Watch bool `yaml:"watch"`

	// WatchDebounce coalesces rapid file events into one reload.
	// Default: 100ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// StorePath, when set, loads profiles from a SQLite profile store
	// instead of the filesystem.
	StorePath string `yaml:"store_path"`
}

// ArchiveConfig configures incident archival.
type ArchiveConfig struct {
	// Enabled controls whether evaluated incidents are archived.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the archive database file path.
	// Default: "data/incidents.db"
	SQLitePath string `yaml:"sqlite_path"`

	// RetentionDays is how long archived incidents are kept.
	// 0 keeps them forever. Default: 90
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of archived incidents. 0 is unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	// Default: "boxbox"
	Namespace string `yaml:"namespace"`

	// Subsystem groups the engine metrics.
	// Default: "engine"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where the metrics HTTP endpoint listens.
	// Default: ":9090"
	ListenAddress string `yaml:"listen_address"`
}
