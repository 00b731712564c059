package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/archive"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/config"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile/store"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/recommend"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/telemetry/metrics"
)

var serveFlags struct {
	profileID string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Evaluate a live incident stream from stdin",
	Long: `Read incidents as JSONL from stdin, evaluate each against the configured
discipline profile, and write evaluation results as JSONL to stdout.

The command runs until stdin closes or the process receives SIGINT/SIGTERM.
Profiles come from the configured source: the profile store when
profiles.store_path is set, otherwise the profiles.path file or directory.
With profiles.watch enabled, profile file changes reload the registry live.
With archive.enabled, every evaluation is recorded and the retention
scheduler prunes old records on the configured cron schedule. With
telemetry.metrics.enabled, Prometheus metrics are served on the configured
listen address.

Examples:
  # Pipe a timing feed through the engine
  timing-feed | boxbox serve --config boxbox.yaml --profile-id oval-default`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.profileID, "profile-id", "", "profile to evaluate with (defaults to the only loaded profile)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newProfileSource(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	registry := profile.NewRegistry()
	if err := registry.Reload(ctx, source); err != nil {
		return err
	}

	if cfg.Profiles.Watch {
		if cfg.Profiles.StorePath != "" {
			logger.Warn("profile watch only applies to file sources, ignoring",
				"store_path", cfg.Profiles.StorePath)
		} else {
			watcher, err := profile.NewWatcher(cfg.Profiles.Path, cfg.Profiles.WatchDebounce, logger)
			if err != nil {
				return err
			}
			go func() {
				if err := watcher.Watch(ctx, func() error {
					return registry.Reload(ctx, source)
				}); err != nil {
					logger.Error("profile watcher exited", "error", err)
				}
			}()
			defer watcher.Stop()
		}
	}

	engineMetrics := newEngineMetrics(cfg)
	if engineMetrics != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", engineMetrics.Handler())
		srv := &http.Server{Addr: cfg.Telemetry.Metrics.ListenAddress, Handler: mux}
		go func() {
			logger.Info("metrics endpoint listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	var storage archive.Storage
	if cfg.Archive.Enabled {
		storage, err = openArchive(cfg, logger)
		if err != nil {
			return err
		}
		defer storage.Close()

		pruner := archive.NewPruner(storage, retentionFromConfig(cfg), logger)
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
	}

	var recorder recommend.MetricsRecorder
	if engineMetrics != nil {
		recorder = engineMetrics
	}
	engine := recommend.NewEngine(logger, nil, recorder)
	encoder := json.NewEncoder(os.Stdout)

	logger.Info("incident stream evaluation started",
		"watch", cfg.Profiles.Watch,
		"archive", cfg.Archive.Enabled,
		"metrics", cfg.Telemetry.Metrics.Enabled,
	)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var ev incident.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			logger.Warn("skipping malformed incident line", "line", line, "error", err)
			continue
		}

		prof, err := selectProfile(registry, serveFlags.profileID)
		if err != nil {
			return err
		}

		result, err := engine.EvaluateIncident(ctx, &ev, prof, recommend.Context{})
		if err != nil {
			logger.Warn("evaluation failed", "line", line, "incident_id", ev.ID, "error", err)
			continue
		}

		if storage != nil {
			record := archive.NewRecord(&ev, prof.ID, result)
			if err := storage.Store(ctx, record); err != nil {
				logger.Error("archive incident failed", "incident_id", ev.ID, "error", err)
			}
		}

		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read incident stream: %w", err)
	}

	logger.Info("incident stream closed", "lines", line)
	return nil
}

// newProfileSource builds the profile source the configuration points at:
// the SQLite profile store when store_path is set, the file source
// otherwise. The returned close function releases store resources.
func newProfileSource(cfg *config.Config, logger *slog.Logger) (profile.Source, func() error, error) {
	if cfg.Profiles.StorePath != "" {
		st, err := store.Open(store.Config{DBPath: cfg.Profiles.StorePath})
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	}
	return profile.NewFileSource(cfg.Profiles.Path, logger), func() error { return nil }, nil
}

// newEngineMetrics returns engine metrics when enabled, nil otherwise.
func newEngineMetrics(cfg *config.Config) *metrics.EngineMetrics {
	if !cfg.Telemetry.Metrics.Enabled {
		return nil
	}
	return metrics.NewEngineMetrics(metrics.Config{
		Namespace: cfg.Telemetry.Metrics.Namespace,
		Subsystem: cfg.Telemetry.Metrics.Subsystem,
	}, nil)
}

// retentionFromConfig maps the archive configuration onto retention limits.
func retentionFromConfig(cfg *config.Config) *archive.RetentionConfig {
	return &archive.RetentionConfig{
		RetentionDays: cfg.Archive.RetentionDays,
		MaxRecords:    cfg.Archive.MaxRecords,
		PruneSchedule: cfg.Archive.PruneSchedule,
	}
}
