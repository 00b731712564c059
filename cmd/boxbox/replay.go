package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/archive"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/config"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/recommend"
)

var replayFlags struct {
	incidentsFile string
	profilesPath  string
	profileID     string
	record        bool
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a stream of incidents through the engine",
	Long: `Replay a JSONL stream of incidents against a discipline profile and
print a summary of the recommendations produced.

Each input line is one incident JSON document. Profiles come from --profiles
when given, otherwise from the source configured in the config file.
Evaluations are recorded into the incident archive when --record is passed
or archive.enabled is set in the configuration.

Examples:
  # Replay a session against a profile directory
  boxbox replay --incidents session.jsonl --profiles profiles/ --profile-id oval-default

  # Record evaluations into the archive
  boxbox replay --incidents session.jsonl --profiles oval.yaml --record`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&replayFlags.incidentsFile, "incidents", "", "incident JSONL file (required)")
	replayCmd.Flags().StringVar(&replayFlags.profilesPath, "profiles", "", "profile YAML file or directory (defaults to the configured source)")
	replayCmd.Flags().StringVar(&replayFlags.profileID, "profile-id", "", "profile to evaluate with (defaults to the only loaded profile)")
	replayCmd.Flags().BoolVar(&replayFlags.record, "record", false, "record evaluations into the incident archive")

	replayCmd.MarkFlagRequired("incidents")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var source profile.Source
	if replayFlags.profilesPath != "" {
		source = profile.NewFileSource(replayFlags.profilesPath, logger)
	} else {
		var closeSource func() error
		source, closeSource, err = newProfileSource(cfg, logger)
		if err != nil {
			return err
		}
		defer closeSource()
	}

	registry := profile.NewRegistry()
	if err := registry.Reload(ctx, source); err != nil {
		return err
	}

	prof, err := selectProfile(registry, replayFlags.profileID)
	if err != nil {
		return err
	}

	var storage archive.Storage
	if replayFlags.record || cfg.Archive.Enabled {
		storage, err = openArchive(cfg, logger)
		if err != nil {
			return err
		}
		defer storage.Close()
	}

	f, err := os.Open(replayFlags.incidentsFile)
	if err != nil {
		return fmt.Errorf("open incidents file %q: %w", replayFlags.incidentsFile, err)
	}
	defer f.Close()

	engine := recommend.NewEngine(logger, nil, nil)

	var (
		evaluated int
		failed    int
		byType    = map[recommend.Type]int{}
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var ev incident.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			logger.Warn("skipping malformed incident line", "line", line, "error", err)
			failed++
			continue
		}

		result, err := engine.EvaluateIncident(ctx, &ev, prof, recommend.Context{})
		if err != nil {
			logger.Warn("evaluation failed", "line", line, "incident_id", ev.ID, "error", err)
			failed++
			continue
		}
		evaluated++
		for _, rec := range result.Recommendations {
			byType[rec.Type]++
		}

		if storage != nil {
			record := archive.NewRecord(&ev, prof.ID, result)
			if err := storage.Store(ctx, record); err != nil {
				return fmt.Errorf("archive incident %q: %w", ev.ID, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read incidents file: %w", err)
	}

	fmt.Printf("Replay complete: %d evaluated, %d failed (profile %s)\n", evaluated, failed, prof.ID)
	for recType, count := range byType {
		fmt.Printf("  %s: %d\n", recType, count)
	}

	return nil
}

func selectProfile(registry *profile.Registry, profileID string) (*profile.Profile, error) {
	if profileID != "" {
		prof, err := registry.Get(profileID)
		if err != nil {
			return nil, err
		}
		return prof, nil
	}

	profiles := registry.List()
	if len(profiles) != 1 {
		return nil, fmt.Errorf("%d profiles loaded, use --profile-id to pick one", len(profiles))
	}
	return profiles[0], nil
}

func openArchive(cfg *config.Config, logger *slog.Logger) (archive.Storage, error) {
	if cfg.Archive.Backend == "memory" {
		return archive.NewMemoryStorage(), nil
	}
	sqliteCfg := archive.DefaultSQLiteConfig()
	sqliteCfg.Path = cfg.Archive.SQLitePath
	return archive.NewSQLiteStorage(sqliteCfg, logger)
}
