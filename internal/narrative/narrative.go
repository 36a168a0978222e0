// Package narrative finds stories retold across different sessions.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/pipeline"
	"cognitive_screen/internal/similarity"
	"cognitive_screen/internal/stats"
	"cognitive_screen/internal/textnorm"
)

const (
	minSentenceWords = 6
	elevatedAt       = 0.85
	sentenceRunes    = 120
	messageRunes     = 60
)

// Session is a raw transcript with its resolved id.
type Session struct {
	ID   string
	Text string
}

type sentence struct {
	text  string
	words []string
}

// Detect compares every sentence of session i with every sentence of each
// later session j. Sentences shorter than six words are skipped. Pairs run
// concurrently; alerts come back in pair order, then sentence order.
func Detect(ctx context.Context, sessions []Session, threshold float64, workers int) ([]model.Alert, error) {
	prepared := make([][]sentence, len(sessions))
	for i, s := range sessions {
		for _, sent := range textnorm.SplitSentences(s.Text) {
			if len(strings.Fields(sent)) < minSentenceWords {
				continue
			}
			prepared[i] = append(prepared[i], sentence{text: sent, words: textnorm.Words(sent)})
		}
	}

	type pair struct{ a, b int }
	var pairs []pair
	for i := range sessions {
		for j := i + 1; j < len(sessions); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	found := make([][]model.Alert, len(pairs))
	errs := pipeline.Run(ctx, len(pairs), workers, func(ctx context.Context, k int) error {
		p := pairs[k]
		for _, si := range prepared[p.a] {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, sj := range prepared[p.b] {
				sim := similarity.Ratio(si.words, sj.words)
				if sim < threshold {
					continue
				}
				found[k] = append(found[k], newAlert(sessions[p.a].ID, sessions[p.b].ID, si.text, sj.text, sim))
			}
		}
		return nil
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("cross-session repetition: %w", errs[0])
	}

	alerts := []model.Alert{}
	for _, f := range found {
		alerts = append(alerts, f...)
	}
	return alerts, nil
}

func newAlert(sessionA, sessionB, a, b string, sim float64) model.Alert {
	sev := model.SeverityModerate
	if sim >= elevatedAt {
		sev = model.SeverityElevated
	}
	rounded := stats.Round(sim, 3)
	return model.Alert{
		Type:       model.AlertCrossSessionRepetition,
		Severity:   sev,
		SessionA:   sessionA,
		SessionB:   sessionB,
		SentenceA:  textnorm.Truncate(a, sentenceRunes),
		SentenceB:  textnorm.Truncate(b, sentenceRunes),
		Similarity: &rounded,
		Message: fmt.Sprintf("Similar narrative detected across sessions (%.0f%% match): \"%s...\" repeated in later session.",
			sim*100, textnorm.Truncate(a, messageRunes)),
	}
}
