package profile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
)

func validProfile(id string) *Profile {
	return &Profile{
		ID:       id,
		Name:     "GT3 Sprint",
		Category: CategoryRoad,
		CautionRules: CautionRules{
			TriggerThreshold:   incident.SeverityMedium,
			FullCourseEnabled:  true,
			LocalYellowEnabled: true,
		},
		PenaltyModel: PenaltyModel{
			Strictness:            1.0,
			ContactTolerance:      0.2,
			RacingIncidentDefault: RacingIncidentReview,
			TimePenaltyOptions:    []int{5, 10, 15},
		},
	}
}

func TestApplyDefaults(t *testing.T) {
	p := &Profile{Name: "Bare", Category: CategoryOval}
	ApplyDefaults(p)

	if p.PenaltyModel.Strictness != 1.0 {
		t.Errorf("Strictness = %v, want 1.0", p.PenaltyModel.Strictness)
	}
	if p.PenaltyModel.RacingIncidentDefault != RacingIncidentReview {
		t.Errorf("RacingIncidentDefault = %q, want review", p.PenaltyModel.RacingIncidentDefault)
	}
	if len(p.PenaltyModel.TimePenaltyOptions) != 3 || p.PenaltyModel.TimePenaltyOptions[1] != 10 {
		t.Errorf("TimePenaltyOptions = %v, want [5 10 15]", p.PenaltyModel.TimePenaltyOptions)
	}
	if p.CautionRules.TriggerThreshold != incident.SeverityMedium {
		t.Errorf("TriggerThreshold = %q, want medium", p.CautionRules.TriggerThreshold)
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		if err := validProfile("gt3").Validate(); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("collects all issues", func(t *testing.T) {
		p := validProfile("broken")
		p.Name = ""
		p.Category = ""
		p.PenaltyModel.Strictness = -1
		p.PenaltyModel.ContactTolerance = 1.5
		p.PenaltyModel.RacingIncidentDefault = "shrug"

		err := p.Validate()
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *ConfigError, got %T", err)
		}
		if cfgErr.ProfileID != "broken" {
			t.Errorf("ProfileID = %q", cfgErr.ProfileID)
		}
		if len(cfgErr.Issues) != 5 {
			t.Errorf("expected 5 issues, got %d: %v", len(cfgErr.Issues), cfgErr.Issues)
		}
	})

	t.Run("penalty options must ascend", func(t *testing.T) {
		p := validProfile("desc")
		p.PenaltyModel.TimePenaltyOptions = []int{15, 10, 5}
		if p.Validate() == nil {
			t.Error("expected error for descending options")
		}
	})

	t.Run("penalty options must be positive", func(t *testing.T) {
		p := validProfile("zero")
		p.PenaltyModel.TimePenaltyOptions = []int{0, 5}
		if p.Validate() == nil {
			t.Error("expected error for non-positive option")
		}
	})

	t.Run("unknown threshold", func(t *testing.T) {
		p := validProfile("thresh")
		p.CautionRules.TriggerThreshold = "extreme"
		if p.Validate() == nil {
			t.Error("expected error for unknown severity threshold")
		}
	})
}

const sampleProfileYAML = `
name: NASCAR Cup Oval
category: oval
cautionRules:
  triggerThreshold: medium
  fullCourseEnabled: true
penaltyModel:
  strictness: 1.2
  contactTolerance: 0.3
  racingIncidentDefault: no_action
  timePenaltyOptions: [5, 10, 15, 30]
`

func TestLoadFile(t *testing.T) {
	t.Run("id defaults to file name", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nascar-oval.yaml")
		if err := os.WriteFile(path, []byte(sampleProfileYAML), 0644); err != nil {
			t.Fatal(err)
		}

		p, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		if p.ID != "nascar-oval" {
			t.Errorf("ID = %q, want nascar-oval", p.ID)
		}
		if p.Category != CategoryOval || p.PenaltyModel.Strictness != 1.2 {
			t.Errorf("profile not decoded: %+v", p)
		}
	})

	t.Run("invalid profile fails fast", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		os.WriteFile(path, []byte("name: Bad\npenaltyModel:\n  contactTolerance: 2.0\n"), 0644)

		_, err := LoadFile(path)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *ConfigError, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "garbage.yaml")
		os.WriteFile(path, []byte(":\n  - ["), 0644)

		if _, err := LoadFile(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFileSource_Directory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "oval.yaml"), []byte(sampleProfileYAML), 0644)
	os.WriteFile(filepath.Join(dir, "road.yml"), []byte("name: Road\ncategory: road\n"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("category: {{"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a profile"), 0644)

	src := NewFileSource(dir, nil)
	profiles, err := src.LoadProfiles(context.Background())
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}

	// The broken file is skipped, the .txt ignored.
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
}

func TestFileSource_MissingPath(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope"), nil)
	if _, err := src.LoadProfiles(context.Background()); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(validProfile("gt3")); err != nil {
			t.Fatalf("Register: %v", err)
		}

		p, err := r.Get("gt3")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if p.Name != "GT3 Sprint" {
			t.Errorf("Name = %q", p.Name)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Get("nope")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected *NotFoundError, got %v", err)
		}
	})

	t.Run("invalid profile rejected", func(t *testing.T) {
		r := NewRegistry()
		p := validProfile("bad")
		p.Name = ""
		if err := r.Register(p); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("by category", func(t *testing.T) {
		r := NewRegistry()
		r.Register(validProfile("a"))
		oval := validProfile("b")
		oval.Category = CategoryOval
		r.Register(oval)

		if got := r.ByCategory(CategoryOval); len(got) != 1 || got[0].ID != "b" {
			t.Errorf("ByCategory(oval) = %v", got)
		}
	})

	t.Run("replace all is atomic on error", func(t *testing.T) {
		r := NewRegistry()
		r.Register(validProfile("keep"))

		bad := validProfile("bad")
		bad.PenaltyModel.Strictness = -1
		if err := r.ReplaceAll([]*Profile{validProfile("new"), bad}); err == nil {
			t.Fatal("expected error")
		}

		// Original contents survive a failed replace.
		if _, err := r.Get("keep"); err != nil {
			t.Errorf("original profile lost: %v", err)
		}
		if _, err := r.Get("new"); err == nil {
			t.Error("partial replace leaked into registry")
		}
	})

	t.Run("reload from source", func(t *testing.T) {
		r := NewRegistry()
		src := NewMemorySource(validProfile("a"), validProfile("b"))
		if err := r.Reload(context.Background(), src); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		if r.Count() != 2 {
			t.Errorf("Count = %d, want 2", r.Count())
		}
	})
}
