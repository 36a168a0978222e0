package render

import (
	"strings"
	"testing"

	"cognitive_screen/internal/model"
)

func TestSession(t *testing.T) {
	a := model.TranscriptAnalysis{
		SessionID:   "call-1",
		SessionDate: "2024-01-01",
		TotalWords:  40,
		RiskScore:   22.5,
		Summary:     "Risk score: 22.5/100.",
		Markers: []model.Marker{
			{Category: model.CategoryDisfluency, Name: "filler_rate", Value: 0.1, Threshold: 0.08, Flagged: true, Severity: model.SeverityMild},
		},
		FlaggedExcerpts: []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	out := Session(a)
	for _, want := range []string{"Session call-1", "22.5/100", "filler_rate", "mild", "... 2 more"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "    f\n") {
		t.Fatalf("expected excerpts capped:\n%s", out)
	}
}

func TestLongitudinal(t *testing.T) {
	l := &model.LongitudinalAnalysis{
		TrendDirection: model.DirectionDeclining,
		Summary:        "Analyzed 2 sessions.",
		TrendMetrics:   map[string]model.TrendMetric{"ttr": {First: 0.6, Last: 0.4, PctChange: -33.3}},
		Alerts:         []model.Alert{{Severity: model.SeverityElevated, Message: "ttr declined"}},
		Sessions: []model.TranscriptAnalysis{
			{SessionID: "a", SessionDate: "2024-01-01", RiskScore: 5},
			{SessionID: "b", SessionDate: "2024-02-01", RiskScore: 40},
		},
	}
	out := Longitudinal(l)
	for _, want := range []string{"2 sessions", "declining", "ttr", "-33.3%", "[elevated] ttr declined", "2024-02-01"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRiskBand(t *testing.T) {
	cases := map[float64]model.Severity{0: model.SeverityNormal, 15: model.SeverityMild, 35: model.SeverityModerate, 80: model.SeverityElevated}
	for score, want := range cases {
		if got := riskBand(score); got != want {
			t.Fatalf("riskBand(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestHistory(t *testing.T) {
	out := History("ann", []model.TrendPoint{{SessionID: "a", Date: "2024-01-01", Value: 12.5}}, nil)
	for _, want := range []string{"Subject ann", "1 sessions", "2024-01-01", "12.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(History("bob", nil, nil), "no stored sessions") {
		t.Fatal("expected empty history notice")
	}
}
