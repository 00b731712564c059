package config

import "time"

// DefaultConfig returns a configuration with every field at its default.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Profiles.Path == "" {
		cfg.Profiles.Path = "./profiles"
	}
	if cfg.Profiles.WatchDebounce == 0 {
		cfg.Profiles.WatchDebounce = 100 * time.Millisecond
	}

	if cfg.Archive.Backend == "" {
		cfg.Archive.Backend = "sqlite"
	}
	if cfg.Archive.SQLitePath == "" {
		cfg.Archive.SQLitePath = "data/incidents.db"
	}
	if cfg.Archive.RetentionDays == 0 {
		cfg.Archive.RetentionDays = 90
	}
	if cfg.Archive.PruneSchedule == "" {
		cfg.Archive.PruneSchedule = "0 3 * * *"
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "boxbox"
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = "engine"
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = ":9090"
	}
}
