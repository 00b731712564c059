package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, and
// validates the result. Environment variables are not consulted; use
// LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the convention
// BOXBOX_SECTION_FIELD (e.g. BOXBOX_PROFILES_PATH) and always take
// precedence over file values. The final configuration is re-validated.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration invalid after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("BOXBOX_PROFILES_PATH"); val != "" {
		cfg.Profiles.Path = val
	}
	if val := os.Getenv("BOXBOX_PROFILES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Profiles.Watch = b
		}
	}
	if val := os.Getenv("BOXBOX_PROFILES_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Profiles.WatchDebounce = d
		}
	}
	if val := os.Getenv("BOXBOX_PROFILES_STORE_PATH"); val != "" {
		cfg.Profiles.StorePath = val
	}

	if val := os.Getenv("BOXBOX_ARCHIVE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Archive.Enabled = b
		}
	}
	if val := os.Getenv("BOXBOX_ARCHIVE_BACKEND"); val != "" {
		cfg.Archive.Backend = val
	}
	if val := os.Getenv("BOXBOX_ARCHIVE_SQLITE_PATH"); val != "" {
		cfg.Archive.SQLitePath = val
	}
	if val := os.Getenv("BOXBOX_ARCHIVE_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Archive.RetentionDays = i
		}
	}
	if val := os.Getenv("BOXBOX_ARCHIVE_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Archive.MaxRecords = i
		}
	}
	if val := os.Getenv("BOXBOX_ARCHIVE_PRUNE_SCHEDULE"); val != "" {
		cfg.Archive.PruneSchedule = val
	}

	if val := os.Getenv("BOXBOX_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("BOXBOX_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("BOXBOX_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("BOXBOX_TELEMETRY_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}
	if val := os.Getenv("BOXBOX_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
