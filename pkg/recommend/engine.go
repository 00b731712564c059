package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

// MetricsRecorder receives evaluation observations. The telemetry/metrics
// package provides a Prometheus-backed implementation; a nil recorder
// disables instrumentation.
type MetricsRecorder interface {
	// ObserveEvaluation records one completed evaluation.
	ObserveEvaluation(incidentType string, recommendations int, seconds float64)

	// CountRecommendation records one produced recommendation by type.
	CountRecommendation(recType string)

	// CountReviewTrigger records one reason a review was flagged.
	CountReviewTrigger(reason string)
}

// Engine evaluates incidents against discipline profiles. It holds no
// mutable state: construct one and share it across goroutines.
type Engine struct {
	logger   *slog.Logger
	notifier Notifier
	metrics  MetricsRecorder
}

// NewEngine creates a recommendation engine. logger, notifier, and metrics
// may each be nil; nil disables the corresponding output.
func NewEngine(logger *slog.Logger, notifier Notifier, metrics MetricsRecorder) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		logger:   logger,
		notifier: notifier,
		metrics:  metrics,
	}
}

// EvaluateIncident classifies an incident into zero or more recommendations.
// The three sub-evaluators run in fixed order (caution, penalty, review) and
// each contributes at most one recommendation. "Nothing to recommend" is a
// valid result, not an error; errors are reserved for malformed
// configuration and missing inputs.
func (e *Engine) EvaluateIncident(ctx context.Context, ev *incident.Event, prof *profile.Profile, sctx Context) (*Result, error) {
	if ev == nil {
		return nil, fmt.Errorf("incident cannot be nil")
	}
	if prof == nil {
		return nil, fmt.Errorf("profile cannot be nil")
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	var recs []Recommendation
	if caution := e.evaluateCaution(ev, prof, sctx); caution != nil {
		recs = append(recs, *caution)
	}
	if penalty := e.evaluatePenalty(ev, prof); penalty != nil {
		recs = append(recs, *penalty)
	}
	if review := e.evaluateReview(ev, prof, recs); review != nil {
		recs = append(recs, *review)
	}

	elapsed := time.Since(start)
	result := &Result{
		Recommendations:  recs,
		Reasoning:        composeReasoning(ev, prof, recs),
		EvaluationTimeMs: float64(elapsed.Nanoseconds()) / 1e6,
	}

	e.logger.Info("incident evaluated",
		"incident_id", ev.ID,
		"session_id", ev.SessionID,
		"incident_type", ev.Type,
		"profile", prof.ID,
		"recommendations", len(recs),
		"duration_ms", result.EvaluationTimeMs,
	)

	if e.metrics != nil {
		e.metrics.ObserveEvaluation(string(ev.Type), len(recs), elapsed.Seconds())
		for i := range recs {
			e.metrics.CountRecommendation(string(recs[i].Type))
		}
	}

	for i := range recs {
		e.notifier.Notify(Event{Kind: EventGenerated, Recommendation: &recs[i]})
	}
	if len(recs) > 0 {
		e.notifier.Notify(Event{Kind: EventBatch, Batch: recs})
	}

	return result, nil
}

// newRecommendation builds a recommendation stamped with the incident and
// profile identity. Only newPenalty attaches a payload.
func newRecommendation(ev *incident.Event, prof *profile.Profile, t Type, details string, confidence float64, priority int) *Recommendation {
	return &Recommendation{
		ID:                uuid.New().String(),
		SessionID:         ev.SessionID,
		IncidentID:        ev.ID,
		Type:              t,
		DisciplineContext: string(prof.Category),
		Details:           details,
		Confidence:        confidence,
		Priority:          priority,
		Status:            StatusPending,
		Timestamp:         time.Now(),
	}
}

// composeReasoning renders the evaluation transcript: one header line, then
// either the no-action line or one line per recommendation in evaluation
// order.
func composeReasoning(ev *incident.Event, prof *profile.Profile, recs []Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluated %s incident using %s profile.", ev.Type, prof.Name)

	if len(recs) == 0 {
		b.WriteString(" No action recommended based on profile thresholds.")
		return b.String()
	}

	for i := range recs {
		fmt.Fprintf(&b, "\n- %s: %s (confidence: %.0f%%)",
			recs[i].Type, recs[i].Details, recs[i].Confidence*100)
	}
	return b.String()
}
