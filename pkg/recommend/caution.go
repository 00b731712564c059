package recommend

import (
	"fmt"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

// Caution confidence and priority constants.
const (
	slowZoneConfidence       = 0.8
	slowZonePriority         = 7
	globalYellowConfidence   = 0.85
	blockageYellowConfidence = 0.95
	globalYellowPriority     = 9
	localYellowConfidence    = 0.75
	localYellowPriority      = 6
)

// evaluateCaution decides whether a caution should be thrown, and which kind.
// Exactly one caution sub-policy can win, in fixed precedence: slow zone,
// full-course yellow, local yellow. Returns nil when the session is already
// under caution (never double-recommend), when the severity is below the
// profile threshold, or when no enabled sub-policy applies.
func (e *Engine) evaluateCaution(ev *incident.Event, prof *profile.Profile, sctx Context) *Recommendation {
	if sctx.FlagState.UnderCaution() {
		e.logger.Debug("caution evaluation skipped, session already under caution",
			"incident_id", ev.ID,
			"flag_state", sctx.FlagState,
		)
		return nil
	}

	cr := prof.CautionRules
	if !ev.Severity.AtLeast(cr.TriggerThreshold) {
		return nil
	}

	blockage := isTrackBlockage(ev, sctx)

	switch {
	case cr.SlowZonesEnabled && prof.Category == profile.CategoryEndurance:
		details := fmt.Sprintf("Deploy slow zone at %s for %s %s incident",
			ev.Location(), ev.Severity, ev.Type)
		return newRecommendation(ev, prof, TypeSlowZone, details, slowZoneConfidence, slowZonePriority)

	case cr.FullCourseEnabled && (blockage || ev.Severity == incident.SeverityHeavy):
		confidence := globalYellowConfidence
		details := fmt.Sprintf("Throw full-course yellow for %s %s incident at %s",
			ev.Severity, ev.Type, ev.Location())
		if blockage {
			confidence = blockageYellowConfidence
			details = fmt.Sprintf("Throw full-course yellow, track blocked at %s (%d cars involved)",
				ev.Location(), len(ev.InvolvedDrivers))
		}
		return newRecommendation(ev, prof, TypeGlobalYellow, details, confidence, globalYellowPriority)

	case cr.LocalYellowEnabled:
		details := fmt.Sprintf("Show local yellow at %s for %s %s incident",
			ev.Location(), ev.Severity, ev.Type)
		return newRecommendation(ev, prof, TypeLocalYellow, details, localYellowConfidence, localYellowPriority)

	default:
		return nil
	}
}

// isTrackBlockage applies the blockage heuristic: a heavy incident involving
// two or more cars blocks the track, as does a spin or loss of control when
// the session context reports the racing line obstructed.
func isTrackBlockage(ev *incident.Event, sctx Context) bool {
	if ev.Severity == incident.SeverityHeavy && len(ev.InvolvedDrivers) >= 2 {
		return true
	}
	if (ev.Type == incident.TypeSpin || ev.Type == incident.TypeLossOfControl) && sctx.TrackBlockage {
		return true
	}
	return false
}
