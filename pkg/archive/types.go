package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/recommend"
)

// Record is one archived incident evaluation.
type Record struct {
	// ID uniquely identifies the archive record.
	ID string `json:"id"`

	// SessionID is the race session the incident occurred in.
	SessionID string `json:"sessionId"`

	// IncidentID is the ID of the evaluated incident.
	IncidentID string `json:"incidentId"`

	// IncidentType is the incident classification (contact, spin, ...).
	IncidentType string `json:"incidentType"`

	// Severity is the incident severity at evaluation time.
	Severity string `json:"severity"`

	// LapNumber is the lap the incident occurred on.
	LapNumber int `json:"lapNumber"`

	// Location is the human-readable incident location.
	Location string `json:"location"`

	// DriverCount is the number of involved drivers.
	DriverCount int `json:"driverCount"`

	// ProfileID is the discipline profile used for evaluation.
	ProfileID string `json:"profileId"`

	// RecommendationCount is how many recommendations the evaluation
	// produced. The recommendations themselves are not persisted; the
	// archive stores incident facts and the outcome summary only.
	RecommendationCount int `json:"recommendationCount"`

	// EvaluationTimeMs is how long the evaluation took, in milliseconds.
	EvaluationTimeMs float64 `json:"evaluationTimeMs"`

	// RecordedAt is when the record was archived.
	RecordedAt time.Time `json:"recordedAt"`
}

// NewRecord builds an archive record from an evaluated incident.
func NewRecord(ev *incident.Event, profileID string, result *recommend.Result) *Record {
	return &Record{
		ID:                  uuid.New().String(),
		SessionID:           ev.SessionID,
		IncidentID:          ev.ID,
		IncidentType:        string(ev.Type),
		Severity:            string(ev.Severity),
		LapNumber:           ev.LapNumber,
		Location:            ev.Location(),
		DriverCount:         len(ev.InvolvedDrivers),
		ProfileID:           profileID,
		RecommendationCount: len(result.Recommendations),
		EvaluationTimeMs:    result.EvaluationTimeMs,
		RecordedAt:          time.Now().UTC(),
	}
}

// Query filters archived records. Zero-valued fields are ignored.
type Query struct {
	// IDs restricts the result to records with these IDs.
	IDs []string

	// SessionID filters by session.
	SessionID string

	// IncidentType filters by incident classification.
	IncidentType string

	// Severity filters by incident severity.
	Severity string

	// StartTime filters records recorded at or after this time.
	StartTime *time.Time

	// EndTime filters records recorded at or before this time.
	EndTime *time.Time

	// Limit caps the number of returned records. 0 means backend default.
	Limit int

	// Offset skips the first N matching records.
	Offset int
}

// Storage persists and retrieves archived incident evaluations.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the filters, newest first.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and returns how many
	// were removed.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure with the backend name and operation.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("archive storage %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, op string, err error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Err: err}
}
