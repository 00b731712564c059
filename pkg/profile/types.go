package profile

import (
	"fmt"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
)

// Category identifies a racing discipline.
type Category string

const (
	CategoryOval      Category = "oval"
	CategoryRoad      Category = "road"
	CategoryEndurance Category = "endurance"
	CategoryDirt      Category = "dirt"
	CategoryKarting   Category = "karting"
)

// RacingIncidentPolicy is the default treatment of contact classified as a
// racing incident.
type RacingIncidentPolicy string

const (
	RacingIncidentNoAction RacingIncidentPolicy = "no_action"
	RacingIncidentReview   RacingIncidentPolicy = "review"
)

// CautionRules configures when and how cautions are recommended. Exactly one
// caution sub-policy is selected per evaluation, in fixed precedence: slow
// zone, then full-course yellow, then local yellow.
type CautionRules struct {
	// TriggerThreshold is the minimum severity that can trigger a caution.
	TriggerThreshold incident.Severity `json:"triggerThreshold" yaml:"triggerThreshold"`

	// SlowZonesEnabled allows localized slow zones (endurance only).
	SlowZonesEnabled bool `json:"slowZonesEnabled" yaml:"slowZonesEnabled"`

	// FullCourseEnabled allows full-course yellows.
	FullCourseEnabled bool `json:"fullCourseEnabled" yaml:"fullCourseEnabled"`

	// LocalYellowEnabled allows corner-local yellow flags.
	LocalYellowEnabled bool `json:"localYellowEnabled" yaml:"localYellowEnabled"`
}

// PenaltyModel configures how penalties are suggested.
type PenaltyModel struct {
	// Strictness scales the fault estimate. 1.0 is neutral; lower values
	// make the series more forgiving.
	Strictness float64 `json:"strictness" yaml:"strictness"`

	// ContactTolerance discounts fault for contact-heavy disciplines, in
	// [0, 1). A tolerance of 0.3 cuts the adjusted fault by 30%.
	ContactTolerance float64 `json:"contactTolerance" yaml:"contactTolerance"`

	// RacingIncidentDefault is applied when contact is classified as a
	// racing incident: no_action suppresses penalties entirely.
	RacingIncidentDefault RacingIncidentPolicy `json:"racingIncidentDefault" yaml:"racingIncidentDefault"`

	// TimePenaltyOptions are the selectable time penalties in seconds,
	// ascending.
	TimePenaltyOptions []int `json:"timePenaltyOptions" yaml:"timePenaltyOptions"`
}

// Profile is one discipline's complete incident policy.
type Profile struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Category     Category     `json:"category" yaml:"category"`
	CautionRules CautionRules `json:"cautionRules" yaml:"cautionRules"`
	PenaltyModel PenaltyModel `json:"penaltyModel" yaml:"penaltyModel"`
}

// ApplyDefaults fills unset optional fields with conservative defaults.
func ApplyDefaults(p *Profile) {
	if p.PenaltyModel.Strictness == 0 {
		p.PenaltyModel.Strictness = 1.0
	}
	if p.PenaltyModel.RacingIncidentDefault == "" {
		p.PenaltyModel.RacingIncidentDefault = RacingIncidentReview
	}
	if len(p.PenaltyModel.TimePenaltyOptions) == 0 {
		p.PenaltyModel.TimePenaltyOptions = []int{5, 10, 15}
	}
	if p.CautionRules.TriggerThreshold == "" {
		p.CautionRules.TriggerThreshold = incident.SeverityMedium
	}
}

// Validate checks the profile for structural problems and returns a
// *ConfigError listing every issue found. Evaluating an invalid profile is a
// configuration error, not a data condition, so callers should fail fast.
func (p *Profile) Validate() error {
	var issues []string

	if p.Name == "" {
		issues = append(issues, "name is required")
	}
	if p.Category == "" {
		issues = append(issues, "category is required")
	}
	if !p.CautionRules.TriggerThreshold.Valid() {
		issues = append(issues, fmt.Sprintf("cautionRules.triggerThreshold %q is not a known severity", p.CautionRules.TriggerThreshold))
	}
	if p.PenaltyModel.Strictness <= 0 {
		issues = append(issues, "penaltyModel.strictness must be positive")
	}
	if p.PenaltyModel.ContactTolerance < 0 || p.PenaltyModel.ContactTolerance >= 1 {
		issues = append(issues, "penaltyModel.contactTolerance must be in [0, 1)")
	}
	switch p.PenaltyModel.RacingIncidentDefault {
	case RacingIncidentNoAction, RacingIncidentReview:
	default:
		issues = append(issues, fmt.Sprintf("penaltyModel.racingIncidentDefault %q must be no_action or review", p.PenaltyModel.RacingIncidentDefault))
	}
	if len(p.PenaltyModel.TimePenaltyOptions) == 0 {
		issues = append(issues, "penaltyModel.timePenaltyOptions must not be empty")
	}
	for i, opt := range p.PenaltyModel.TimePenaltyOptions {
		if opt <= 0 {
			issues = append(issues, fmt.Sprintf("penaltyModel.timePenaltyOptions[%d] must be positive", i))
		}
		if i > 0 && opt <= p.PenaltyModel.TimePenaltyOptions[i-1] {
			issues = append(issues, "penaltyModel.timePenaltyOptions must be strictly ascending")
		}
	}

	if len(issues) > 0 {
		return &ConfigError{ProfileID: p.ID, Issues: issues}
	}
	return nil
}
