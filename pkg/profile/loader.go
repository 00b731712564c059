package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source provides discipline profiles to a registry or engine host.
type Source interface {
	// LoadProfiles loads all profiles from the source.
	LoadProfiles(ctx context.Context) ([]*Profile, error)
}

// FileSource loads profiles from YAML files on disk. The path may be a single
// file or a directory; directories are walked and every .yaml/.yml file is
// loaded as one profile.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a file-based profile source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// LoadProfiles loads all profiles from the configured path. Invalid files in
// a directory are skipped with a warning so one bad profile cannot take down
// the rest of the rulebook.
func (s *FileSource) LoadProfiles(ctx context.Context) ([]*Profile, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	var profiles []*Profile

	if info.IsDir() {
		err = filepath.Walk(s.path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			p, err := LoadFile(path)
			if err != nil {
				s.logger.Warn("failed to load profile file, skipping",
					"path", path,
					"error", err,
				)
				return nil
			}
			profiles = append(profiles, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk profile directory %q: %w", s.path, err)
		}
	} else {
		p, err := LoadFile(s.path)
		if err != nil {
			return nil, err
		}
		profiles = []*Profile{p}
	}

	s.logger.Info("loaded discipline profiles",
		"path", s.path,
		"profile_count", len(profiles),
	)

	return profiles, nil
}

// MemorySource is an in-memory profile source for testing and embedding.
type MemorySource struct {
	profiles []*Profile
}

// NewMemorySource creates an in-memory profile source.
func NewMemorySource(profiles ...*Profile) *MemorySource {
	return &MemorySource{profiles: profiles}
}

// LoadProfiles returns the profiles stored in memory.
func (s *MemorySource) LoadProfiles(ctx context.Context) ([]*Profile, error) {
	out := make([]*Profile, len(s.profiles))
	copy(out, s.profiles)
	return out, nil
}

// LoadFile loads, defaults, and validates a single profile from a YAML file.
// A missing ID defaults to the file name without its extension.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %q: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile file %q: %w", path, err)
	}

	if p.ID == "" {
		base := filepath.Base(path)
		p.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse decodes a profile from YAML and applies defaults. Validation is the
// caller's responsibility (LoadFile does both).
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	ApplyDefaults(&p)
	return &p, nil
}
