package markers

import (
	"fmt"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/similarity"
	"cognitive_screen/internal/stats"
	"cognitive_screen/internal/textnorm"
)

const (
	maxReportedPairs  = 10
	pairEvidenceRunes = 80
)

// WithinSessionRepetition finds sentences that retell an earlier one.
// Adjacent sentences are never compared.
func WithinSessionRepetition(in Input, th Thresholds) Result {
	words := make([][]string, len(in.Sentences))
	for i, s := range in.Sentences {
		words[i] = textnorm.Words(s)
	}

	var pairs []model.RepeatedPair
	for i := range in.Sentences {
		for j := i + 2; j < len(in.Sentences); j++ {
			sim := similarity.Ratio(words[i], words[j])
			if sim < th.RepetitionSimilarity {
				continue
			}
			pairs = append(pairs, model.RepeatedPair{
				SentenceA:  in.Sentences[i],
				SentenceB:  in.Sentences[j],
				Similarity: stats.Round(sim, 3),
				Positions:  [2]int{i, j},
			})
		}
	}

	evidence := make([]string, 0, min(len(pairs), maxEvidence))
	for _, p := range pairs {
		if len(evidence) == maxEvidence {
			break
		}
		evidence = append(evidence, fmt.Sprintf("[%.0f%% similar] \"%s\" <-> \"%s\"",
			p.Similarity*100,
			textnorm.Truncate(p.SentenceA, pairEvidenceRunes),
			textnorm.Truncate(p.SentenceB, pairEvidenceRunes)))
	}

	reported := pairs
	if len(reported) > maxReportedPairs {
		reported = reported[:maxReportedPairs]
	}
	if reported == nil {
		reported = []model.RepeatedPair{}
	}

	count := len(pairs)
	return Result{
		Metrics: map[string]any{
			"within_session_repetitions": count,
			"repeated_pairs":             reported,
		},
		Markers: []model.Marker{{
			Category:  model.CategoryRepetition,
			Name:      "within_session_repetitions",
			Value:     float64(count),
			Threshold: 1,
			Flagged:   count > 0,
			Severity:  SeverityByCount(count),
			Evidence:  evidence,
		}},
	}
}
