package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/archive"
)

var pruneFlags struct {
	retentionDays int
	maxRecords    int64
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the incident archive",
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune old records from the incident archive",
	Long: `Prune the incident archive by age and record count.

Limits come from the config file; the flags override them for one run.

Examples:
  # Prune using configured limits
  boxbox archive prune --config config.yaml

  # Keep only the last 30 days
  boxbox archive prune --config config.yaml --retention-days 30`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().IntVar(&pruneFlags.retentionDays, "retention-days", 0, "override configured retention days")
	pruneCmd.Flags().Int64Var(&pruneFlags.maxRecords, "max-records", 0, "override configured max records")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	storage, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	retention := &archive.RetentionConfig{
		RetentionDays: cfg.Archive.RetentionDays,
		MaxRecords:    cfg.Archive.MaxRecords,
	}
	if pruneFlags.retentionDays > 0 {
		retention.RetentionDays = pruneFlags.retentionDays
	}
	if pruneFlags.maxRecords > 0 {
		retention.MaxRecords = pruneFlags.maxRecords
	}

	pruner := archive.NewPruner(storage, retention, logger)
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d archived incident(s)\n", deleted)
	return nil
}
