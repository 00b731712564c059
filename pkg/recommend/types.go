package recommend

import (
	"time"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
)

// Type identifies what a recommendation asks race control to do.
type Type string

const (
	// TypeSlowZone asks for a localized speed-limited zone (endurance).
	TypeSlowZone Type = "slow_zone"

	// TypeGlobalYellow asks for a full-course caution.
	TypeGlobalYellow Type = "global_yellow"

	// TypeLocalYellow asks for a corner-local yellow flag.
	TypeLocalYellow Type = "local_yellow"

	// TypePenalty suggests a penalty against the at-fault driver.
	TypePenalty Type = "penalty"

	// TypeReviewIncident asks a human steward to review the case.
	TypeReviewIncident Type = "review_incident"
)

// Status is the lifecycle state of a recommendation. The engine only ever
// creates Pending recommendations; accept/reject transitions happen
// downstream.
type Status string

const (
	StatusPending Status = "pending"
)

// PenaltyPayload carries the penalty specifics. Only recommendations of
// TypePenalty have one; evaluatePenalty is the only place it is attached.
type PenaltyPayload struct {
	DriverID     string `json:"driverId"`
	DriverName   string `json:"driverName"`
	PenaltyType  string `json:"penaltyType"`
	PenaltyValue string `json:"penaltyValue"`
	Points       int    `json:"points"`
}

// Recommendation is one engine output. Immutable after creation: the engine
// never touches a recommendation once it is produced.
type Recommendation struct {
	ID                string          `json:"id"`
	SessionID         string          `json:"sessionId"`
	IncidentID        string          `json:"incidentId"`
	Type              Type            `json:"type"`
	DisciplineContext string          `json:"disciplineContext"`
	Details           string          `json:"details"`
	Confidence        float64         `json:"confidence"`
	Priority          int             `json:"priority"`
	Status            Status          `json:"status"`
	Timestamp         time.Time       `json:"timestamp"`
	Payload           *PenaltyPayload `json:"payload,omitempty"`
}

// Context is the ambient, per-evaluation session state. It is supplied fresh
// on every call and never cached by the engine.
type Context struct {
	// FlagState is the current session flag.
	FlagState incident.FlagState `json:"flagState"`

	// TrackBlockage reports whether the racing line is physically
	// obstructed.
	TrackBlockage bool `json:"trackBlockage"`
}

// Result is the outcome of one incident evaluation.
type Result struct {
	// Recommendations holds the produced recommendations in evaluation
	// order: caution, penalty, review.
	Recommendations []Recommendation `json:"recommendations"`

	// Reasoning is the human-readable evaluation transcript.
	Reasoning string `json:"reasoning"`

	// EvaluationTimeMs is observational timing, not a control signal.
	EvaluationTimeMs float64 `json:"evaluationTimeMs"`
}
