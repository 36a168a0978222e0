// Package model holds the records produced by the screening engine. They are
// serialized as-is for the summarization collaborator, so the json tags are
// part of the contract.
package model

// Severity grades a single marker. Bands are totally ordered:
// normal < mild < moderate < elevated.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeverityElevated Severity = "elevated"
)

// Rank returns the position of s in the severity order. Unknown values rank
// below normal.
func (s Severity) Rank() int {
	switch s {
	case SeverityNormal:
		return 0
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeverityElevated:
		return 3
	default:
		return -1
	}
}

// Weight is the numeric value used by the composite risk score.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityMild:
		return 0.33
	case SeverityModerate:
		return 0.66
	case SeverityElevated:
		return 1.0
	default:
		return 0
	}
}

type Category string

const (
	CategoryLexicalDiversity Category = "lexical_diversity"
	CategoryAnomia           Category = "anomia"
	CategoryDisfluency       Category = "disfluency"
	CategoryPronounUsage     Category = "pronoun_usage"
	CategoryPausePatterns    Category = "pause_patterns"
	CategoryRepetition       Category = "repetition"
)

// Marker is one detected linguistic marker.
type Marker struct {
	Category  Category `json:"category" yaml:"category"`
	Name      string   `json:"marker" yaml:"marker"`
	Value     float64  `json:"value" yaml:"value"`
	Threshold float64  `json:"threshold" yaml:"threshold"`
	Flagged   bool     `json:"flagged" yaml:"flagged"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Evidence  []string `json:"evidence" yaml:"evidence"`
}

// TranscriptAnalysis is the result for a single session.
type TranscriptAnalysis struct {
	SessionID       string         `json:"session_id" yaml:"session_id"`
	SessionDate     string         `json:"session_date" yaml:"session_date"`
	TotalWords      int            `json:"total_words" yaml:"total_words"`
	UniqueWords     int            `json:"unique_words" yaml:"unique_words"`
	TotalSentences  int            `json:"total_sentences" yaml:"total_sentences"`
	RiskScore       float64        `json:"risk_score" yaml:"risk_score"`
	Summary         string         `json:"summary" yaml:"summary"`
	FlaggedExcerpts []string       `json:"flagged_excerpts" yaml:"flagged_excerpts"`
	Markers         []Marker       `json:"markers" yaml:"markers"`
	RawMetrics      map[string]any `json:"raw_metrics" yaml:"raw_metrics"`
}

// FlaggedMarkers returns the markers that crossed their threshold, in order.
func (a TranscriptAnalysis) FlaggedMarkers() []Marker {
	out := make([]Marker, 0, len(a.Markers))
	for _, m := range a.Markers {
		if m.Flagged {
			out = append(out, m)
		}
	}
	return out
}

// Metric returns a numeric raw metric.
func (a TranscriptAnalysis) Metric(name string) (float64, bool) {
	v, ok := a.RawMetrics[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// RepeatedPair is a pair of similar sentences inside one transcript.
type RepeatedPair struct {
	SentenceA  string  `json:"sentence_a" yaml:"sentence_a"`
	SentenceB  string  `json:"sentence_b" yaml:"sentence_b"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Positions  [2]int  `json:"positions" yaml:"positions"`
}

const (
	AlertMetricDecline          = "metric_decline"
	AlertMetricIncrease         = "metric_increase"
	AlertRiskScoreIncrease      = "risk_score_increase"
	AlertCrossSessionRepetition = "cross_session_repetition"
)

// Alert flags a significant longitudinal change or a repeated narrative.
type Alert struct {
	Type       string   `json:"type" yaml:"type"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Message    string   `json:"message" yaml:"message"`
	Metric     string   `json:"metric,omitempty" yaml:"metric,omitempty"`
	SessionA   string   `json:"session_a,omitempty" yaml:"session_a,omitempty"`
	SessionB   string   `json:"session_b,omitempty" yaml:"session_b,omitempty"`
	SentenceA  string   `json:"sentence_a,omitempty" yaml:"sentence_a,omitempty"`
	SentenceB  string   `json:"sentence_b,omitempty" yaml:"sentence_b,omitempty"`
	Similarity *float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

type TrendPoint struct {
	SessionID string  `json:"session_id" yaml:"session_id"`
	Date      string  `json:"date" yaml:"date"`
	Value     float64 `json:"value" yaml:"value"`
}

// TrendMetric is the first-to-last movement of one raw metric.
type TrendMetric struct {
	Values    []TrendPoint `json:"values" yaml:"values"`
	First     float64      `json:"first" yaml:"first"`
	Last      float64      `json:"last" yaml:"last"`
	Change    float64      `json:"change" yaml:"change"`
	PctChange float64      `json:"pct_change" yaml:"pct_change"`
}

type Direction string

const (
	DirectionStable    Direction = "stable"
	DirectionImproving Direction = "improving"
	DirectionDeclining Direction = "declining"
)

// LongitudinalAnalysis compares an ordered series of sessions.
type LongitudinalAnalysis struct {
	TrendDirection Direction              `json:"trend_direction" yaml:"trend_direction"`
	TrendMetrics   map[string]TrendMetric `json:"trend_metrics" yaml:"trend_metrics"`
	Alerts         []Alert                `json:"alerts" yaml:"alerts"`
	Summary        string                 `json:"summary" yaml:"summary"`
	Sessions       []TranscriptAnalysis   `json:"sessions" yaml:"sessions"`
}

// RiskScores returns the per-session risk scores in session order.
func (l LongitudinalAnalysis) RiskScores() []float64 {
	out := make([]float64, len(l.Sessions))
	for i, s := range l.Sessions {
		out[i] = s.RiskScore
	}
	return out
}
