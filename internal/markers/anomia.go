package markers

import (
	"strings"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
	"cognitive_screen/internal/textnorm"
)

const hedgeContext = 40

// Anomia counts hedge and circumlocution phrases ("i think", "the thing",
// "whatchamacallit") and sentences that trail off.
func Anomia(in Input, th Thresholds) Result {
	total := len(in.Tokens)

	hedgeCount := 0
	var evidence []string
	for _, p := range lex.hedges {
		spans := textnorm.FindAll(p.re, in.Lower)
		hedgeCount += len(spans)
		for _, s := range spans {
			if len(evidence) < maxEvidence {
				evidence = append(evidence, textnorm.Excerpt(in.lowerRunes, s, hedgeContext))
			}
		}
	}
	rate := stats.Rate(hedgeCount, total)

	trailing := 0
	for _, s := range in.Sentences {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "...") || strings.HasSuffix(s, "--") || strings.HasSuffix(s, "—") {
			trailing++
		}
	}

	return Result{
		Metrics: map[string]any{
			"hedge_phrase_count": hedgeCount,
			"hedge_phrase_rate":  stats.Round(rate, 4),
			"trailing_sentences": trailing,
			"anomia_indicators":  hedgeCount + trailing,
		},
		Markers: []model.Marker{{
			Category:  model.CategoryAnomia,
			Name:      "hedge_phrase_rate",
			Value:     stats.Round(rate, 4),
			Threshold: th.HedgeRateHigh,
			Flagged:   rate > th.HedgeRateHigh,
			Severity:  SeverityHigherIsWorse(rate, th.HedgeRateHigh),
			Evidence:  capEvidence(evidence),
		}},
	}
}
