package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls metric naming.
type Config struct {
	// Namespace prefixes every metric name. Default: "boxbox".
	Namespace string

	// Subsystem groups the engine metrics. Default: "engine".
	Subsystem string
}

// DefaultConfig returns the default metric naming.
func DefaultConfig() Config {
	return Config{Namespace: "boxbox", Subsystem: "engine"}
}

// EngineMetrics tracks incident evaluation metrics.
//
// Metrics:
//   - boxbox_engine_evaluations_total: evaluations by incident type and outcome
//   - boxbox_engine_evaluation_duration_seconds: evaluation latency
//   - boxbox_engine_recommendations_total: recommendations by type
//   - boxbox_engine_review_triggers_total: review flags by reason
type EngineMetrics struct {
	registry *prometheus.Registry

	evaluationsTotal     *prometheus.CounterVec
	evaluationDuration   *prometheus.HistogramVec
	recommendationsTotal *prometheus.CounterVec
	reviewTriggersTotal  *prometheus.CounterVec
}

// NewEngineMetrics creates and registers the engine metrics with the provided
// registry. A nil registry gets a fresh private one.
func NewEngineMetrics(cfg Config, registry *prometheus.Registry) *EngineMetrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "boxbox"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "engine"
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	em := &EngineMetrics{
		registry: registry,

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of incident evaluations",
			},
			[]string{"incident_type", "outcome"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of incident evaluation in seconds",
				// Evaluations are CPU-only and complete in microseconds.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"incident_type"},
		),

		recommendationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "recommendations_total",
				Help:      "Total number of recommendations produced, by type",
			},
			[]string{"type"},
		),

		reviewTriggersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "review_triggers_total",
				Help:      "Total number of review flags, by trigger reason",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.recommendationsTotal,
		em.reviewTriggersTotal,
	)

	return em
}

// ObserveEvaluation records one completed evaluation. It implements
// recommend.MetricsRecorder.
func (m *EngineMetrics) ObserveEvaluation(incidentType string, recommendations int, seconds float64) {
	outcome := "recommended"
	if recommendations == 0 {
		outcome = "no_action"
	}
	m.evaluationsTotal.WithLabelValues(incidentType, outcome).Inc()
	m.evaluationDuration.WithLabelValues(incidentType).Observe(seconds)
}

// CountRecommendation records one produced recommendation by type. It
// implements recommend.MetricsRecorder.
func (m *EngineMetrics) CountRecommendation(recType string) {
	m.recommendationsTotal.WithLabelValues(recType).Inc()
}

// CountReviewTrigger records one reason a review was flagged. It implements
// recommend.MetricsRecorder.
func (m *EngineMetrics) CountReviewTrigger(reason string) {
	m.reviewTriggersTotal.WithLabelValues(reason).Inc()
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format, for hosts that mount a /metrics endpoint.
func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
