package longitudinal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cognitive_screen/internal/analysis"
	"cognitive_screen/internal/model"
)

const calm = "The garden looked beautiful this spring. Roses bloomed along the fence near the old oak tree. " +
	"Our neighbor brought fresh tomatoes from the farmers market yesterday afternoon."

const looping = "went to the store and went to the store and went to the store"

func TestSessionsAreOrderedByDate(t *testing.T) {
	inputs := []model.SessionInput{
		{Text: calm, SessionID: "march", Date: "2024-03-01"},
		{Text: calm, SessionID: "january", Date: "2024-01-01"},
		{Text: calm, SessionID: "february", Date: "2024-02-01"},
	}
	out, err := New(nil, WithWorkers(3)).Analyze(context.Background(), inputs)
	require.NoError(t, err)

	dates := []string{}
	for _, s := range out.Sessions {
		dates = append(dates, s.SessionDate)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-02-01", "2024-03-01"}, dates)
	assert.Equal(t, "january", out.TrendMetrics["ttr"].Values[0].SessionID)
}

func TestDecliningSeries(t *testing.T) {
	inputs := []model.SessionInput{
		{Text: looping, SessionID: "late", Date: "2024-06-01"},
		{Text: calm, SessionID: "early", Date: "2024-01-01"},
	}
	out, err := New(analysis.New()).Analyze(context.Background(), inputs)
	require.NoError(t, err)

	assert.Equal(t, model.DirectionDeclining, out.TrendDirection)
	types := []string{}
	for _, a := range out.Alerts {
		types = append(types, a.Type)
	}
	assert.Equal(t, []string{model.AlertMetricDecline, model.AlertRiskScoreIncrease}, types)
	assert.Equal(t, []float64{0, 16.5}, out.RiskScores())
	assert.Contains(t, out.Summary, "Longitudinal analysis across 2 sessions.")
	assert.Contains(t, out.Summary, "Overall trend: declining.")
	assert.Contains(t, out.Summary, "2 alert(s):")
}

func TestCrossSessionRepeatUsesResolvedIDs(t *testing.T) {
	inputs := []model.SessionInput{
		{Text: "I took my medication this morning at eight. Then I watched the news on television.", Date: "2024-01-01"},
		{Text: "I took my medication this morning at eight. My daughter called about the weekend plans.", Date: "2024-01-08"},
	}
	out, err := New(nil).Analyze(context.Background(), inputs)
	require.NoError(t, err)

	var repeats []model.Alert
	for _, a := range out.Alerts {
		if a.Type == model.AlertCrossSessionRepetition {
			repeats = append(repeats, a)
		}
	}
	require.Len(t, repeats, 1)
	assert.Equal(t, model.SeverityElevated, repeats[0].Severity)
	assert.Equal(t, 1.0, *repeats[0].Similarity)
	assert.Equal(t, "session-2024-01-01", repeats[0].SessionA)
	assert.Equal(t, "session-2024-01-08", repeats[0].SessionB)
}

func TestParallelMatchesSequential(t *testing.T) {
	az := analysis.New()
	inputs := []model.SessionInput{
		{Text: calm, SessionID: "a", Date: "2024-01-01"},
		{Text: looping, SessionID: "b", Date: "2024-01-02"},
		{Text: "Um, well, I think it was, uh, the thing. [pause] You know the place.", SessionID: "c", Date: "2024-01-03"},
	}
	out, err := New(az, WithWorkers(4)).Analyze(context.Background(), inputs)
	require.NoError(t, err)
	for i, in := range inputs {
		assert.Equal(t, az.Analyze(in.Text, in.SessionID, in.Date), out.Sessions[i])
	}
}

func TestCrossSessionTimeout(t *testing.T) {
	inputs := []model.SessionInput{
		{Text: calm, SessionID: "a", Date: "2024-01-01"},
		{Text: calm, SessionID: "b", Date: "2024-01-02"},
	}
	_, err := New(nil, WithCrossSessionTimeout(time.Nanosecond)).Analyze(context.Background(), inputs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestEmptySeries(t *testing.T) {
	out, err := New(nil).AnalyzeRequest(context.Background(), model.LongitudinalRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Sessions)
	assert.Empty(t, out.Alerts)
	assert.Equal(t, model.DirectionStable, out.TrendDirection)
	assert.Equal(t, "No sessions provided.", out.Summary)
}
