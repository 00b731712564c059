package recommend

import (
	"fmt"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

// Penalty thresholds and constants.
const (
	// minPenaltyFault is the adjusted-fault floor below which no penalty is
	// suggested.
	minPenaltyFault = 0.3

	// maxPenaltyConfidence caps penalty confidence: a suggestion is never
	// presented as more certain than 90%.
	maxPenaltyConfidence = 0.9

	penaltyDriveThrough = "drive_through"
	penaltyTime         = "time_penalty"
	penaltyWarning      = "warning"
)

// evaluatePenalty decides whether a penalty should be suggested and against
// whom. Returns nil when the profile waives racing incidents, when fault
// confidence is insufficient, or when no at-fault driver can be resolved.
func (e *Engine) evaluatePenalty(ev *incident.Event, prof *profile.Profile) *Recommendation {
	pm := prof.PenaltyModel

	if ev.Type == incident.TypeContact &&
		ev.ContactType == incident.ContactRacingIncident &&
		pm.RacingIncidentDefault == profile.RacingIncidentNoAction {
		return nil
	}

	maxFault := 0.0
	for i := range ev.InvolvedDrivers {
		if p := ev.InvolvedDrivers[i].FaultProbability; p != nil && *p > maxFault {
			maxFault = *p
		}
	}

	adjustedFault := maxFault * pm.Strictness * (1 - pm.ContactTolerance)
	if adjustedFault < minPenaltyFault {
		e.logger.Debug("penalty skipped, insufficient fault confidence",
			"incident_id", ev.ID,
			"max_fault", maxFault,
			"adjusted_fault", adjustedFault,
		)
		return nil
	}

	driver := atFaultDriver(ev.InvolvedDrivers)
	if driver == nil {
		return nil
	}

	penaltyType, penaltyValue := suggestPenalty(ev.Severity, pm.TimePenaltyOptions)

	confidence := adjustedFault
	if confidence > maxPenaltyConfidence {
		confidence = maxPenaltyConfidence
	}

	var priority, points int
	switch ev.Severity {
	case incident.SeverityHeavy:
		priority, points = 8, 3
	case incident.SeverityMedium:
		priority, points = 5, 2
	default:
		priority, points = 3, 1
	}

	details := fmt.Sprintf("Suggest %s for car #%s (%s), adjusted fault %.2f",
		penaltyType, driver.CarNumber, driver.DriverName, adjustedFault)

	rec := newRecommendation(ev, prof, TypePenalty, details, confidence, priority)
	rec.Payload = &PenaltyPayload{
		DriverID:     driver.DriverID,
		DriverName:   driver.DriverName,
		PenaltyType:  penaltyType,
		PenaltyValue: penaltyValue,
		Points:       points,
	}
	return rec
}

// atFaultDriver resolves who a penalty should target: an aggressor if one is
// marked, otherwise the driver with the highest fault probability (unset
// probabilities compare at the 0.5 baseline). Returns nil when nobody is
// involved.
func atFaultDriver(drivers []incident.InvolvedDriver) *incident.InvolvedDriver {
	if len(drivers) == 0 {
		return nil
	}

	for i := range drivers {
		if drivers[i].Role == incident.RoleAggressor {
			return &drivers[i]
		}
	}

	best := &drivers[0]
	bestFault := faultOrBaseline(best)
	for i := 1; i < len(drivers); i++ {
		if f := faultOrBaseline(&drivers[i]); f > bestFault {
			best, bestFault = &drivers[i], f
		}
	}
	return best
}

func faultOrBaseline(d *incident.InvolvedDriver) float64 {
	if d.FaultProbability != nil {
		return *d.FaultProbability
	}
	return 0.5
}

// suggestPenalty maps severity to a penalty type and value. Medium incidents
// take the middle entry of the profile's time penalty options (index rounded
// down).
func suggestPenalty(severity incident.Severity, timeOptions []int) (string, string) {
	switch severity {
	case incident.SeverityHeavy:
		return penaltyDriveThrough, penaltyDriveThrough
	case incident.SeverityMedium:
		if len(timeOptions) == 0 {
			return penaltyTime, penaltyTime
		}
		return penaltyTime, fmt.Sprintf("%ds", timeOptions[len(timeOptions)/2])
	default:
		return penaltyWarning, penaltyWarning
	}
}
