package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cognitive_screen/internal/model"
)

const SystemPrompt = `You are a clinical cognitive health assistant embedded in an elderly care platform. You receive structured analysis data from a rule-based speech analysis system that detects early markers of cognitive decline from voice call transcripts.

Your job is to:
1. Interpret the rule-based scores in plain, empathetic language suitable for a family caretaker.
2. Highlight which markers are concerning and explain what they mean in simple terms.
3. Provide actionable interventions and daily tips to help slow or prevent cognitive decline.

Guidelines:
- Be warm, supportive, and non-alarmist. These are screening signals, not diagnoses.
- Speak to a caretaker audience (e.g. adult children caring for aging parents).
- Ground your explanations in the actual data (reference specific metrics).
- Separate your response into clear sections.
- For interventions, prioritize evidence-based lifestyle recommendations (physical activity, social engagement, cognitive exercises, sleep hygiene, nutrition).
- If risk is low, still offer general wellness tips.
- Never claim to provide a medical diagnosis.`

const SessionTemplate = `Here is the cognitive decline screening analysis for a voice call transcript.

**Session:** %s | Date: %s
**Risk Score:** %s/100
**Rule-Based Summary:** %s

**Marker Breakdown:**
%s

**Key Metrics:**
%s

**Flagged Transcript Excerpts:**
%s

Please provide:
1. **Overview** - A 2-3 sentence plain-language interpretation of these results for a family caretaker.
2. **Areas of Concern** - Explain each flagged marker in simple terms. What does it look like in conversation? Why does it matter?
3. **Positive Signs** - Note any metrics that look healthy or normal.
4. **Recommended Interventions** - 3-5 specific, actionable steps the caretaker or elderly person can take this week to support cognitive health. Include a mix of physical, social, and cognitive activities.
5. **Daily Tips** - 2-3 small daily habits that can help.`

const LongitudinalTemplate = `Here is a longitudinal cognitive decline screening analysis across multiple voice call sessions.

**Overall Trend:** %s
**Number of Sessions:** %d

**Per-Session Summary:**
%s

**Metric Trends:**
%s

**Alerts:**
%s

**Rule-Based Summary:** %s

Please provide:
1. **Trend Overview** - A 2-3 sentence plain-language interpretation of how things are changing over time.
2. **Key Changes** - Highlight the most significant shifts between sessions. Are things getting better, worse, or staying stable?
3. **Cross-Session Patterns** - Note any repeated stories, increasing confusion, or other patterns across calls.
4. **Recommended Interventions** - 4-6 specific, evidence-based steps prioritized by urgency. Include both immediate actions and longer-term lifestyle adjustments.
5. **When to Seek Professional Help** - Clear guidance on what changes would warrant a doctor visit.
6. **Weekly Plan** - A simple 7-day plan with one cognitive, physical, and social activity per day.`

// MaxExcerpts caps how many flagged excerpts go into a session prompt.
const MaxExcerpts = 8

// keyMetrics maps prompt labels to raw metric names, in prompt order.
var keyMetrics = [][2]string{
	{"total_words", "total_words"},
	{"unique_words", "unique_words"},
	{"type_token_ratio", "ttr"},
	{"filler_rate", "filler_rate"},
	{"hedge_phrase_rate", "hedge_phrase_rate"},
	{"pause_rate", "pause_rate"},
	{"pronoun_ratio", "pronoun_ratio"},
	{"generic_pronoun_ratio", "generic_pronoun_ratio"},
	{"within_session_repetitions", "within_session_repetitions"},
}

func SessionPrompt(a model.TranscriptAnalysis) string {
	lines := make([]string, 0, len(a.Markers))
	for _, m := range a.Markers {
		lines = append(lines, fmt.Sprintf("- %s/%s: value=%s, threshold=%s, flagged=%t, severity=%s",
			m.Category, m.Name, num(m.Value), num(m.Threshold), m.Flagged, m.Severity))
	}

	excerpts := a.FlaggedExcerpts
	if len(excerpts) > MaxExcerpts {
		excerpts = excerpts[:MaxExcerpts]
	}
	excerptText := "  (none)"
	if len(excerpts) > 0 {
		parts := make([]string, len(excerpts))
		for i, e := range excerpts {
			parts[i] = "  - " + e
		}
		excerptText = strings.Join(parts, "\n")
	}

	return strings.TrimSpace(fmt.Sprintf(SessionTemplate,
		orNA(a.SessionID), orNA(a.SessionDate), num(a.RiskScore), orNA(a.Summary),
		strings.Join(lines, "\n"), metricsBlock(a.RawMetrics), excerptText))
}

func LongitudinalPrompt(l *model.LongitudinalAnalysis) string {
	sessions := make([]string, 0, len(l.Sessions))
	for _, s := range l.Sessions {
		sessions = append(sessions, fmt.Sprintf("- %s (%s): risk=%s, words=%d, TTR=%s, fillers=%s, pauses=%s",
			s.SessionID, s.SessionDate, num(s.RiskScore), s.TotalWords,
			metricOrNA(s, "ttr"), metricOrNA(s, "filler_rate"), metricOrNA(s, "pause_rate")))
	}

	names := make([]string, 0, len(l.TrendMetrics))
	for name := range l.TrendMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	trends := make([]string, 0, len(names))
	for _, name := range names {
		tm := l.TrendMetrics[name]
		trends = append(trends, fmt.Sprintf("- %s: %s -> %s (change: %+.4f, %+.1f%%)",
			name, num(tm.First), num(tm.Last), tm.Change, tm.PctChange))
	}

	alertText := "  (none)"
	if len(l.Alerts) > 0 {
		parts := make([]string, len(l.Alerts))
		for i, al := range l.Alerts {
			parts[i] = fmt.Sprintf("  - [%s] %s", al.Severity, al.Message)
		}
		alertText = strings.Join(parts, "\n")
	}

	return strings.TrimSpace(fmt.Sprintf(LongitudinalTemplate,
		orNA(string(l.TrendDirection)), len(l.Sessions), strings.Join(sessions, "\n"),
		strings.Join(trends, "\n"), alertText, orNA(l.Summary)))
}

func metricsBlock(raw map[string]any) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, km := range keyMetrics {
		v, err := json.Marshal(raw[km[1]])
		if err != nil {
			v = []byte("null")
		}
		fmt.Fprintf(&b, "  %q: %s", km[0], v)
		if i < len(keyMetrics)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func metricOrNA(a model.TranscriptAnalysis, name string) string {
	v, ok := a.Metric(name)
	if !ok {
		return "N/A"
	}
	return num(v)
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
