package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEngineMetrics_ObserveEvaluation(t *testing.T) {
	m := NewEngineMetrics(DefaultConfig(), prometheus.NewRegistry())

	m.ObserveEvaluation("contact", 2, 0.0001)
	m.ObserveEvaluation("contact", 0, 0.0002)
	m.ObserveEvaluation("spin", 1, 0.0003)

	if got := testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("contact", "recommended")); got != 1 {
		t.Errorf("contact recommended = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("contact", "no_action")); got != 1 {
		t.Errorf("contact no_action = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("spin", "recommended")); got != 1 {
		t.Errorf("spin recommended = %v, want 1", got)
	}
}

func TestEngineMetrics_CountRecommendation(t *testing.T) {
	m := NewEngineMetrics(Config{}, prometheus.NewRegistry())

	m.CountRecommendation("penalty")
	m.CountRecommendation("penalty")
	m.CountRecommendation("global_yellow")

	if got := testutil.ToFloat64(m.recommendationsTotal.WithLabelValues("penalty")); got != 2 {
		t.Errorf("penalty count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.recommendationsTotal.WithLabelValues("global_yellow")); got != 1 {
		t.Errorf("global_yellow count = %v, want 1", got)
	}
}

func TestEngineMetrics_CountReviewTrigger(t *testing.T) {
	m := NewEngineMetrics(DefaultConfig(), prometheus.NewRegistry())

	m.CountReviewTrigger("unclear fault")
	m.CountReviewTrigger("unclear fault")
	m.CountReviewTrigger("multi-car incident")

	if got := testutil.ToFloat64(m.reviewTriggersTotal.WithLabelValues("unclear fault")); got != 2 {
		t.Errorf("unclear fault count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.reviewTriggersTotal.WithLabelValues("multi-car incident")); got != 1 {
		t.Errorf("multi-car count = %v, want 1", got)
	}
}

func TestEngineMetrics_NilRegistry(t *testing.T) {
	m := NewEngineMetrics(DefaultConfig(), nil)
	m.ObserveEvaluation("contact", 1, 0.0001)

	if m.Handler() == nil {
		t.Error("Handler should not be nil")
	}
}
