package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/recommend"
)

var evaluateFlags struct {
	incidentFile string
	profileFile  string
	flagState    string
	blockage     bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one incident against a discipline profile",
	Long: `Evaluate a single incident and print the resulting recommendations
as JSON.

The incident is a JSON document; the profile is a YAML discipline profile.

Examples:
  # Evaluate an incident
  boxbox evaluate --incident incident.json --profile oval.yaml

  # Under an existing caution
  boxbox evaluate --incident incident.json --profile oval.yaml --flag-state yellow

  # With a reported track blockage
  boxbox evaluate --incident incident.json --profile oval.yaml --blockage`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateFlags.incidentFile, "incident", "i", "", "incident JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateFlags.profileFile, "profile", "p", "", "discipline profile YAML file (required)")
	evaluateCmd.Flags().StringVar(&evaluateFlags.flagState, "flag-state", "green", "current session flag state")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.blockage, "blockage", false, "track blockage reported")

	evaluateCmd.MarkFlagRequired("incident")
	evaluateCmd.MarkFlagRequired("profile")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ev, err := loadIncident(evaluateFlags.incidentFile)
	if err != nil {
		return err
	}

	prof, err := profile.LoadFile(evaluateFlags.profileFile)
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(logger, nil, nil)
	result, err := engine.EvaluateIncident(cmd.Context(), ev, prof, recommend.Context{
		FlagState:     incident.FlagState(evaluateFlags.flagState),
		TrackBlockage: evaluateFlags.blockage,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func loadIncident(path string) (*incident.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read incident file %q: %w", path, err)
	}
	var ev incident.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parse incident file %q: %w", path, err)
	}
	return &ev, nil
}
