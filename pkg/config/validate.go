package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidationError collects all configuration problems found in one pass.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Issues, "; "))
}

// Validate checks the configuration and returns a *ValidationError listing
// every problem, or nil when the configuration is valid.
func Validate(cfg *Config) error {
	var issues []string

	if cfg.Profiles.Path == "" && cfg.Profiles.StorePath == "" {
		issues = append(issues, "profiles: path or store_path is required")
	}
	if cfg.Profiles.WatchDebounce < 0 {
		issues = append(issues, "profiles: watch_debounce must not be negative")
	}

	switch cfg.Archive.Backend {
	case "sqlite", "memory":
	default:
		issues = append(issues, fmt.Sprintf("archive: unknown backend %q (want sqlite or memory)", cfg.Archive.Backend))
	}
	if cfg.Archive.Backend == "sqlite" && cfg.Archive.SQLitePath == "" {
		issues = append(issues, "archive: sqlite_path is required for the sqlite backend")
	}
	if cfg.Archive.RetentionDays < 0 {
		issues = append(issues, "archive: retention_days must not be negative")
	}
	if cfg.Archive.MaxRecords < 0 {
		issues = append(issues, "archive: max_records must not be negative")
	}
	if cfg.Archive.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Archive.PruneSchedule); err != nil {
			issues = append(issues, fmt.Sprintf("archive: invalid prune_schedule %q: %v", cfg.Archive.PruneSchedule, err))
		}
	}

	switch strings.ToLower(cfg.Telemetry.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		issues = append(issues, fmt.Sprintf("telemetry: unknown logging level %q", cfg.Telemetry.Logging.Level))
	}
	switch strings.ToLower(cfg.Telemetry.Logging.Format) {
	case "json", "text":
	default:
		issues = append(issues, fmt.Sprintf("telemetry: unknown logging format %q", cfg.Telemetry.Logging.Format))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
