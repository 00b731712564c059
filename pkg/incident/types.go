package incident

import (
	"encoding/json"
	"fmt"
)

// Severity classifies how serious an incident is. Severities form an ordinal
// scale: light < medium < heavy.
type Severity string

const (
	SeverityLight  Severity = "light"
	SeverityMedium Severity = "medium"
	SeverityHeavy  Severity = "heavy"
)

// Rank returns the ordinal position of the severity (light=1, medium=2,
// heavy=3). Unknown severities rank 0 and never satisfy a threshold.
func (s Severity) Rank() int {
	switch s {
	case SeverityLight:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHeavy:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the severity is one of the known values.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// AtLeast reports whether the severity meets or exceeds the threshold on the
// ordinal scale.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}

// normalizeSeverity maps legacy relay aliases (low/med/high) onto the
// canonical scale. Unrecognized input passes through unchanged so validation
// can report it.
func normalizeSeverity(raw string) Severity {
	switch raw {
	case "low":
		return SeverityLight
	case "med":
		return SeverityMedium
	case "high":
		return SeverityHeavy
	default:
		return Severity(raw)
	}
}

// UnmarshalJSON accepts both the canonical severity values and the legacy
// relay aliases low/med/high.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("severity must be a string: %w", err)
	}
	*s = normalizeSeverity(raw)
	return nil
}

// UnmarshalYAML accepts both the canonical severity values and the legacy
// relay aliases low/med/high.
func (s *Severity) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("severity must be a string: %w", err)
	}
	*s = normalizeSeverity(raw)
	return nil
}

// Type identifies what kind of on-track event was detected.
type Type string

const (
	TypeContact       Type = "contact"
	TypeSpin          Type = "spin"
	TypeLossOfControl Type = "loss_of_control"
	TypeOffTrack      Type = "off_track"
	TypeStopped       Type = "stopped"
	TypeDebris        Type = "debris"
)

// ContactType qualifies a contact incident.
type ContactType string

const (
	ContactRacingIncident ContactType = "racing_incident"
	ContactAvoidable      ContactType = "avoidable"
	ContactForcedError    ContactType = "forced_error"
)

// Role describes a driver's part in an incident.
type Role string

const (
	RoleAggressor Role = "aggressor"
	RoleVictim    Role = "victim"
	RoleNeutral   Role = "neutral"
)

// FlagState is the session-wide flag at the time of evaluation.
type FlagState string

const (
	FlagGreen     FlagState = "green"
	FlagYellow    FlagState = "yellow"
	FlagCaution   FlagState = "caution"
	FlagRed       FlagState = "red"
	FlagCheckered FlagState = "checkered"
)

// UnderCaution reports whether the flag state already represents a caution
// period (yellow or full caution).
func (f FlagState) UnderCaution() bool {
	return f == FlagYellow || f == FlagCaution
}

// InvolvedDriver identifies one car involved in an incident. FaultProbability
// is optional: the detection pipeline only attaches it when it has enough
// telemetry to estimate fault.
type InvolvedDriver struct {
	DriverID         string   `json:"driverId" yaml:"driverId"`
	CarNumber        string   `json:"carNumber" yaml:"carNumber"`
	DriverName       string   `json:"driverName" yaml:"driverName"`
	Role             Role     `json:"role" yaml:"role"`
	FaultProbability *float64 `json:"faultProbability,omitempty" yaml:"faultProbability,omitempty"`
}

// Event is a normalized incident as delivered by the detection pipeline.
// TrackPosition is a lap fraction in [0, 1). CornerName and ContactType are
// optional.
type Event struct {
	ID              string           `json:"id" yaml:"id"`
	SessionID       string           `json:"sessionId" yaml:"sessionId"`
	LapNumber       int              `json:"lapNumber" yaml:"lapNumber"`
	TrackPosition   float64          `json:"trackPosition" yaml:"trackPosition"`
	CornerName      string           `json:"cornerName,omitempty" yaml:"cornerName,omitempty"`
	Type            Type             `json:"type" yaml:"type"`
	ContactType     ContactType      `json:"contactType,omitempty" yaml:"contactType,omitempty"`
	Severity        Severity         `json:"severity" yaml:"severity"`
	InvolvedDrivers []InvolvedDriver `json:"involvedDrivers" yaml:"involvedDrivers"`
}

// Location describes where on track the incident happened, preferring the
// human-readable corner name when the pipeline supplied one.
func (e *Event) Location() string {
	if e.CornerName != "" {
		return e.CornerName
	}
	return fmt.Sprintf("track position %.2f", e.TrackPosition)
}

// Document projects the event into the fact document consumed by the rule
// evaluator. Keys mirror the JSON contract so rule trees authored against the
// wire shape resolve unchanged. Optional fields that are absent are omitted
// rather than set to empty values, so the exists operator sees them as
// undefined.
func (e *Event) Document() map[string]any {
	doc := map[string]any{
		"id":            e.ID,
		"sessionId":     e.SessionID,
		"lapNumber":     e.LapNumber,
		"trackPosition": e.TrackPosition,
		"type":          string(e.Type),
		"severity":      string(e.Severity),
		"driverCount":   len(e.InvolvedDrivers),
	}
	if e.CornerName != "" {
		doc["cornerName"] = e.CornerName
	}
	if e.ContactType != "" {
		doc["contactType"] = string(e.ContactType)
	}
	return doc
}
