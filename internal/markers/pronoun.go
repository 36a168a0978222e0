package markers

import (
	"fmt"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
)

// PronounUsage reports the personal-pronoun ratio and the generic-pronoun
// ratio as two independent markers.
func PronounUsage(in Input, th Thresholds) Result {
	total := len(in.Tokens)
	personal, generic := 0, 0
	for _, t := range in.Tokens {
		if lex.personalPronouns.has(t) {
			personal++
		}
		if lex.genericPronouns.has(t) {
			generic++
		}
	}
	pr := stats.Rate(personal, total)
	gr := stats.Rate(generic, total)

	return Result{
		Metrics: map[string]any{
			"pronoun_count":         personal,
			"pronoun_ratio":         stats.Round(pr, 4),
			"generic_pronoun_count": generic,
			"generic_pronoun_ratio": stats.Round(gr, 4),
		},
		Markers: []model.Marker{
			{
				Category:  model.CategoryPronounUsage,
				Name:      "pronoun_ratio",
				Value:     stats.Round(pr, 4),
				Threshold: th.PronounRatioHigh,
				Flagged:   pr > th.PronounRatioHigh,
				Severity:  SeverityHigherIsWorse(pr, th.PronounRatioHigh),
				Evidence:  []string{fmt.Sprintf("Pronouns: %d/%d words (%.1f%%)", personal, total, pr*100)},
			},
			{
				Category:  model.CategoryPronounUsage,
				Name:      "generic_pronoun_ratio",
				Value:     stats.Round(gr, 4),
				Threshold: th.GenericPronounHigh,
				Flagged:   gr > th.GenericPronounHigh,
				Severity:  SeverityHigherIsWorse(gr, th.GenericPronounHigh),
				Evidence:  []string{fmt.Sprintf("Generic pronouns (it/this/that/thing/stuff): %d/%d (%.1f%%)", generic, total, gr*100)},
			},
		},
	}
}
