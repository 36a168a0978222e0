// Package scoring folds markers into the composite risk score and renders the
// rule-based summaries.
package scoring

import (
	"fmt"
	"strings"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
)

const defaultCategoryWeight = 10

var categoryWeights = map[model.Category]float64{
	model.CategoryLexicalDiversity: 25,
	model.CategoryAnomia:           25,
	model.CategoryDisfluency:       15,
	model.CategoryPronounUsage:     10,
	model.CategoryPausePatterns:    10,
	model.CategoryRepetition:       15,
}

var categoryLabels = map[model.Category]string{
	model.CategoryLexicalDiversity: "Reduced vocabulary diversity",
	model.CategoryAnomia:           "Word-finding difficulties",
	model.CategoryDisfluency:       "Speech disfluency (fillers/false starts)",
	model.CategoryPronounUsage:     "Elevated pronoun usage",
	model.CategoryPausePatterns:    "Increased pausing",
	model.CategoryRepetition:       "Repetitive statements",
}

// EmptySummary is the summary of a transcript with no analyzable words.
const EmptySummary = "Transcript is empty or contains no analyzable words."

// CategoryWeight returns the weight of a category in the composite score.
func CategoryWeight(c model.Category) float64 {
	if w, ok := categoryWeights[c]; ok {
		return w
	}
	return defaultCategoryWeight
}

// RiskScore averages severity weights per category, applies the category
// weights and clamps the sum to [0, 100] at one decimal.
func RiskScore(markers []model.Marker) float64 {
	var order []model.Category
	byCategory := map[model.Category][]float64{}
	for _, m := range markers {
		if _, ok := byCategory[m.Category]; !ok {
			order = append(order, m.Category)
		}
		byCategory[m.Category] = append(byCategory[m.Category], m.Severity.Weight())
	}

	score := 0.0
	for _, c := range order {
		score += stats.Mean(byCategory[c]) * CategoryWeight(c)
	}
	return stats.Round(stats.Clamp(score, 0, 100), 1)
}

// Label is the human-readable name of a marker category.
func Label(c model.Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// SessionSummary describes the flagged categories of one session.
func SessionSummary(markers []model.Marker, risk float64) string {
	var flagged []model.Marker
	for _, m := range markers {
		if m.Flagged {
			flagged = append(flagged, m)
		}
	}
	if len(flagged) == 0 {
		return fmt.Sprintf("No significant cognitive decline markers detected in this session. Risk score: %.1f/100.", risk)
	}

	parts := []string{fmt.Sprintf("Risk score: %.1f/100. Detected %d area(s) of concern:", risk, len(flagged))}
	seen := map[model.Category]bool{}
	for _, m := range flagged {
		if seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		parts = append(parts, fmt.Sprintf("  - %s (%s)", Label(m.Category), m.Severity))
	}
	return strings.Join(parts, "\n")
}

// LongitudinalSummary describes a date-ordered series of sessions.
func LongitudinalSummary(sessions []model.TranscriptAnalysis, direction model.Direction, alerts []model.Alert) string {
	if len(sessions) == 0 {
		return "No sessions provided."
	}
	parts := []string{
		fmt.Sprintf("Longitudinal analysis across %d sessions.", len(sessions)),
		fmt.Sprintf("Overall trend: %s.", direction),
	}

	lo, hi := sessions[0].RiskScore, sessions[0].RiskScore
	for _, s := range sessions[1:] {
		lo = min(lo, s.RiskScore)
		hi = max(hi, s.RiskScore)
	}
	parts = append(parts, fmt.Sprintf("Risk score range: %.1f - %.1f (latest: %.1f).", lo, hi, sessions[len(sessions)-1].RiskScore))

	if len(alerts) > 0 {
		parts = append(parts, fmt.Sprintf("\n%d alert(s):", len(alerts)))
		for _, a := range alerts {
			parts = append(parts, fmt.Sprintf("  - [%s] %s", strings.ToUpper(string(a.Severity)), a.Message))
		}
	}
	return strings.Join(parts, "\n")
}
