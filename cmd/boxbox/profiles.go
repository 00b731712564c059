package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

var profilesValidateFlags struct {
	file   string
	dir    string
	format string
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage discipline profiles",
}

var profilesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate discipline profile files",
	Long: `Validate discipline profile YAML files.

Validation covers YAML syntax, required fields, caution thresholds, and
penalty model constraints. Every problem in a file is reported, not just
the first one.

Examples:
  # Validate a single profile
  boxbox profiles validate --file oval.yaml

  # Validate a directory of profiles
  boxbox profiles validate --dir profiles/

  # JSON output for CI
  boxbox profiles validate --dir profiles/ --format json`,
	RunE: runProfilesValidate,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesValidateCmd)

	profilesValidateCmd.Flags().StringVarP(&profilesValidateFlags.file, "file", "f", "", "profile file to validate")
	profilesValidateCmd.Flags().StringVarP(&profilesValidateFlags.dir, "dir", "d", "", "directory of profile files")
	profilesValidateCmd.Flags().StringVar(&profilesValidateFlags.format, "format", "text", "output format: text, json")
}

// profileResult is the validation outcome for one profile file.
type profileResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

func runProfilesValidate(cmd *cobra.Command, args []string) error {
	if profilesValidateFlags.file == "" && profilesValidateFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if profilesValidateFlags.file != "" {
		files = append(files, profilesValidateFlags.file)
	}
	if profilesValidateFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(profilesValidateFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("list profile files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no profile files found")
	}

	results := make([]profileResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateProfileFile(file))
	}

	if profilesValidateFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		printProfileResults(results)
	}

	for _, result := range results {
		if !result.Valid {
			return fmt.Errorf("profile validation failed")
		}
	}
	return nil
}

func validateProfileFile(path string) profileResult {
	result := profileResult{File: path, Valid: true}

	_, err := profile.LoadFile(path)
	if err == nil {
		return result
	}

	result.Valid = false
	var cfgErr *profile.ConfigError
	if errors.As(err, &cfgErr) {
		result.Issues = cfgErr.Issues
	} else {
		result.Issues = []string{err.Error()}
	}
	return result
}

func printProfileResults(results []profileResult) {
	invalid := 0
	for _, result := range results {
		if result.Valid {
			fmt.Printf("✓ %s\n", result.File)
			continue
		}
		invalid++
		fmt.Printf("✗ %s\n", result.File)
		for _, issue := range result.Issues {
			fmt.Printf("    %s\n", issue)
		}
	}
	fmt.Printf("\n%d profile(s) checked, %d invalid\n", len(results), invalid)
}
