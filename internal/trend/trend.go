// Package trend compares date-ordered session analyses.
package trend

import (
	"fmt"
	"math"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
)

// KeyMetrics are the raw metrics tracked across sessions.
var KeyMetrics = []string{
	"ttr",
	"mattr",
	"filler_rate",
	"hedge_phrase_rate",
	"pause_rate",
	"pronoun_ratio",
	"generic_pronoun_ratio",
	"within_session_repetitions",
}

const (
	ttrDeclineAlert     = -0.05
	fillerIncreaseAlert = 0.02
	riskIncreaseAlert   = 10.0

	ttrVote    = 0.03
	fillerVote = 0.02
	hedgeVote  = 0.01
)

// Compute builds first-to-last series for every key metric present in all
// sessions. Sessions must already be sorted by date.
func Compute(sessions []model.TranscriptAnalysis) map[string]model.TrendMetric {
	out := map[string]model.TrendMetric{}
	if len(sessions) == 0 {
		return out
	}
metrics:
	for _, name := range KeyMetrics {
		points := make([]model.TrendPoint, 0, len(sessions))
		for _, s := range sessions {
			v, ok := s.Metric(name)
			if !ok {
				continue metrics
			}
			points = append(points, model.TrendPoint{SessionID: s.SessionID, Date: s.SessionDate, Value: v})
		}
		first, last := points[0].Value, points[len(points)-1].Value
		change := last - first
		pct := 0.0
		if first != 0 {
			pct = stats.Round(change/first*100, 1)
		}
		out[name] = model.TrendMetric{
			Values:    points,
			First:     first,
			Last:      last,
			Change:    stats.Round(change, 4),
			PctChange: pct,
		}
	}
	return out
}

// Alerts flags a TTR decline, a filler-rate increase and a rising risk score.
func Alerts(sessions []model.TranscriptAnalysis, trends map[string]model.TrendMetric) []model.Alert {
	alerts := []model.Alert{}

	if t, ok := trends["ttr"]; ok && t.Change < ttrDeclineAlert {
		alerts = append(alerts, model.Alert{
			Type:     model.AlertMetricDecline,
			Metric:   "ttr",
			Severity: model.SeverityModerate,
			Message: fmt.Sprintf("Lexical diversity (TTR) declined by %.1f%% across sessions (%.3f -> %.3f).",
				math.Abs(t.PctChange), t.First, t.Last),
		})
	}

	if t, ok := trends["filler_rate"]; ok && t.Change > fillerIncreaseAlert {
		alerts = append(alerts, model.Alert{
			Type:     model.AlertMetricIncrease,
			Metric:   "filler_rate",
			Severity: model.SeverityModerate,
			Message:  fmt.Sprintf("Filler word rate increased by %.1f%% across sessions.", t.PctChange),
		})
	}

	if n := len(sessions); n >= 2 {
		first, last := sessions[0].RiskScore, sessions[n-1].RiskScore
		if last-first > riskIncreaseAlert {
			alerts = append(alerts, model.Alert{
				Type:     model.AlertRiskScoreIncrease,
				Severity: model.SeverityElevated,
				Message:  fmt.Sprintf("Composite risk score increased from %.1f to %.1f over %d sessions.", first, last, n),
			})
		}
	}
	return alerts
}

// Direction is a weighted vote: TTR counts twice, filler and hedge rates once.
func Direction(trends map[string]model.TrendMetric) model.Direction {
	declining, improving := 0, 0
	vote := func(metric string, band float64, weight int, higherIsWorse bool) {
		t, ok := trends[metric]
		if !ok {
			return
		}
		change := t.Change
		if !higherIsWorse {
			change = -change
		}
		switch {
		case change > band:
			declining += weight
		case change < -band:
			improving += weight
		}
	}
	vote("ttr", ttrVote, 2, false)
	vote("filler_rate", fillerVote, 1, true)
	vote("hedge_phrase_rate", hedgeVote, 1, true)

	switch {
	case declining > improving:
		return model.DirectionDeclining
	case improving > declining:
		return model.DirectionImproving
	default:
		return model.DirectionStable
	}
}
