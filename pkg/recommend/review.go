package recommend

import (
	"sort"
	"strings"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

// Review trigger constants.
const (
	reviewConfidence = 0.6
	reviewPriority   = 4

	// lowConfidenceThreshold flags earlier recommendations the engine is
	// not sure about.
	lowConfidenceThreshold = 0.5

	// faultClarityThreshold is the minimum gap between the top two fault
	// probabilities before fault is considered unclear.
	faultClarityThreshold = 0.5

	// multiCarThreshold is the driver count above which a steward always
	// reviews.
	multiCarThreshold = 2
)

// Review trigger reason strings, comma-joined into the recommendation
// details.
const (
	reasonLowConfidence = "low confidence"
	reasonMultiCar      = "multi-car incident"
	reasonUnclearFault  = "unclear fault"
)

// evaluateReview decides whether a human steward must look at the case. It
// runs last so it can see what the caution and penalty evaluators produced.
func (e *Engine) evaluateReview(ev *incident.Event, prof *profile.Profile, produced []Recommendation) *Recommendation {
	var reasons []string

	for i := range produced {
		if produced[i].Confidence < lowConfidenceThreshold {
			reasons = append(reasons, reasonLowConfidence)
			break
		}
	}

	if len(ev.InvolvedDrivers) > multiCarThreshold {
		reasons = append(reasons, reasonMultiCar)
	}

	if faultClarity(ev.InvolvedDrivers) < faultClarityThreshold {
		reasons = append(reasons, reasonUnclearFault)
	}

	if len(reasons) == 0 {
		return nil
	}

	if e.metrics != nil {
		for _, reason := range reasons {
			e.metrics.CountReviewTrigger(reason)
		}
	}

	return newRecommendation(ev, prof, TypeReviewIncident,
		strings.Join(reasons, ", "), reviewConfidence, reviewPriority)
}

// faultClarity is the gap between the two highest fault probabilities among
// the involved drivers; drivers without an estimate contribute 0. A wide gap
// means fault is clear. With fewer than two drivers fault is maximally clear
// and never triggers review on this ground alone.
func faultClarity(drivers []incident.InvolvedDriver) float64 {
	if len(drivers) < 2 {
		return 1
	}

	probs := make([]float64, len(drivers))
	for i := range drivers {
		if p := drivers[i].FaultProbability; p != nil {
			probs[i] = *p
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(probs)))

	return probs[0] - probs[1]
}
