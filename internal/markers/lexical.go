package markers

import (
	"fmt"

	"cognitive_screen/internal/chunk"
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/stats"
)

const mattrWindow = 50

// LexicalDiversity measures vocabulary richness: TTR, moving-average TTR over
// 50-token windows and the hapax legomena ratio.
func LexicalDiversity(in Input, th Thresholds) Result {
	total := len(in.Tokens)
	freq := make(map[string]int, total)
	for _, t := range in.Tokens {
		freq[t]++
	}
	unique := len(freq)
	ttr := stats.Rate(unique, total)

	mattr := ttr
	if windows := chunk.SlidingWindow(in.Tokens, mattrWindow, 1); len(windows) > 0 {
		ratios := make([]float64, len(windows))
		for i, w := range windows {
			ratios[i] = w.TypeTokenRatio()
		}
		mattr = stats.Mean(ratios)
	}

	hapax := 0
	for _, n := range freq {
		if n == 1 {
			hapax++
		}
	}

	marker := model.Marker{
		Category:  model.CategoryLexicalDiversity,
		Name:      "type_token_ratio",
		Value:     stats.Round(ttr, 4),
		Threshold: th.TTRLow,
		Flagged:   ttr < th.TTRLow,
		Severity:  SeverityLowerIsWorse(ttr, th.TTRLow),
		Evidence:  []string{fmt.Sprintf("TTR=%.3f (unique=%d, total=%d)", ttr, unique, total)},
	}

	return Result{
		Metrics: map[string]any{
			"ttr":            stats.Round(ttr, 4),
			"mattr":          stats.Round(mattr, 4),
			"unique_words":   unique,
			"total_words":    total,
			"hapax_legomena": hapax,
			"hapax_ratio":    stats.Round(stats.Rate(hapax, total), 4),
		},
		Markers: []model.Marker{marker},
	}
}
