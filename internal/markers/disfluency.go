package markers

import (
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
	"cognitive_screen/internal/textnorm"
)

const fillerContext = 30

// Disfluency counts filler words and phrases, false starts and immediate
// word repeats. Only the filler rate gates a marker.
func Disfluency(in Input, th Thresholds) Result {
	total := len(in.Tokens)

	fillers := 0
	for _, t := range in.Tokens {
		if lex.singleFillerSet.has(t) {
			fillers++
		}
	}
	for _, p := range lex.multiFillers {
		fillers += textnorm.Count(p.re, in.Lower)
	}
	rate := stats.Rate(fillers, total)

	var evidence []string
	for _, p := range lex.singleFillers {
		if len(evidence) >= maxEvidence {
			break
		}
		for _, s := range textnorm.FindAll(p.re, in.Lower) {
			evidence = append(evidence, textnorm.Excerpt(in.lowerRunes, s, fillerContext))
			if len(evidence) >= maxEvidence {
				break
			}
		}
	}

	falseStarts := 0
	for _, re := range falseStartPatterns {
		falseStarts += textnorm.Count(re, in.Lower)
	}

	repeats := 0
	for i := 0; i+1 < len(in.Tokens); i++ {
		if in.Tokens[i] == in.Tokens[i+1] && !lex.repeatExempt.has(in.Tokens[i]) {
			repeats++
		}
	}

	return Result{
		Metrics: map[string]any{
			"filler_count":               fillers,
			"filler_rate":                stats.Round(rate, 4),
			"false_starts":               falseStarts,
			"immediate_word_repetitions": repeats,
			"total_disfluencies":         fillers + falseStarts + repeats,
		},
		Markers: []model.Marker{{
			Category:  model.CategoryDisfluency,
			Name:      "filler_word_rate",
			Value:     stats.Round(rate, 4),
			Threshold: th.FillerRateHigh,
			Flagged:   rate > th.FillerRateHigh,
			Severity:  SeverityHigherIsWorse(rate, th.FillerRateHigh),
			Evidence:  capEvidence(evidence),
		}},
	}
}
