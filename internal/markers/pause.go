package markers

import (
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
	"cognitive_screen/internal/textnorm"
)

const pauseContext = 40

// Pauses matches transcription pause signatures on the raw text. Patterns
// are counted independently, so "...." hits both the ellipsis and the
// extended-dots pattern.
func Pauses(in Input, th Thresholds) Result {
	total := len(in.Tokens)

	count := 0
	var evidence []string
	for _, re := range pausePatterns {
		spans := textnorm.FindAll(re, in.Text)
		count += len(spans)
		for _, s := range spans {
			if len(evidence) < maxEvidence {
				evidence = append(evidence, textnorm.Excerpt(in.textRunes, s, pauseContext))
			}
		}
	}
	rate := stats.Rate(count, total)

	return Result{
		Metrics: map[string]any{
			"pause_count": count,
			"pause_rate":  stats.Round(rate, 4),
		},
		Markers: []model.Marker{{
			Category:  model.CategoryPausePatterns,
			Name:      "pause_rate",
			Value:     stats.Round(rate, 4),
			Threshold: th.PauseRateHigh,
			Flagged:   rate > th.PauseRateHigh,
			Severity:  SeverityHigherIsWorse(rate, th.PauseRateHigh),
			Evidence:  capEvidence(evidence),
		}},
	}
}
