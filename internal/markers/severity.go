package markers

import "cognitive_screen/internal/model"

// SeverityHigherIsWorse grades a value where exceeding t is the concern.
func SeverityHigherIsWorse(value, t float64) model.Severity {
	switch {
	case value <= t*0.5:
		return model.SeverityNormal
	case value <= t:
		return model.SeverityMild
	case value <= t*1.5:
		return model.SeverityModerate
	default:
		return model.SeverityElevated
	}
}

// SeverityLowerIsWorse grades a value where falling below t is the concern.
func SeverityLowerIsWorse(value, t float64) model.Severity {
	switch {
	case value >= t*1.2:
		return model.SeverityNormal
	case value >= t:
		return model.SeverityMild
	case value >= t*0.8:
		return model.SeverityModerate
	default:
		return model.SeverityElevated
	}
}

// SeverityByCount grades a number of repeated sentence pairs.
func SeverityByCount(count int) model.Severity {
	switch {
	case count >= 3:
		return model.SeverityElevated
	case count == 2:
		return model.SeverityModerate
	case count == 1:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}
