// Package render formats screening results for a terminal.
package render

import (
	"fmt"
	"sort"
	"strings"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/scoring"
)

const maxExcerpts = 5

func Session(a model.TranscriptAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render("Session "+a.SessionID), dimStyle.Render(a.SessionDate))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Risk:"), severityStyles[riskBand(a.RiskScore)].Render(fmt.Sprintf("%.1f/100", a.RiskScore)))
	fmt.Fprintf(&b, "%s %d words, %d unique, %d sentences\n", labelStyle.Render("Size:"), a.TotalWords, a.UniqueWords, a.TotalSentences)
	b.WriteString(a.Summary)
	b.WriteString("\n")

	if len(a.Markers) > 0 {
		b.WriteString("\n" + labelStyle.Render("Markers") + "\n")
	}
	for _, m := range a.Markers {
		flag := " "
		if m.Flagged {
			flag = "!"
		}
		fmt.Fprintf(&b, " %s %-20s %-28s %10.4f  (threshold %g)  %s\n",
			flag, scoring.Label(m.Category), m.Name, m.Value, m.Threshold, severity(m.Severity))
	}

	excerpts := a.FlaggedExcerpts
	if len(excerpts) > maxExcerpts {
		excerpts = excerpts[:maxExcerpts]
	}
	if len(excerpts) > 0 {
		b.WriteString("\n" + labelStyle.Render("Excerpts") + "\n")
		for _, e := range excerpts {
			b.WriteString(excerptStyle.Render(e) + "\n")
		}
		if extra := len(a.FlaggedExcerpts) - len(excerpts); extra > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    ... %d more", extra)) + "\n")
		}
	}
	return b.String()
}

func Longitudinal(l *model.LongitudinalAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(fmt.Sprintf("%d sessions", len(l.Sessions))), direction(l.TrendDirection))
	b.WriteString(l.Summary)
	b.WriteString("\n")

	if len(l.Sessions) > 0 {
		b.WriteString("\n" + labelStyle.Render("Sessions") + "\n")
	}
	for _, s := range l.Sessions {
		fmt.Fprintf(&b, "  %-12s %-24s %s\n", s.SessionDate, s.SessionID,
			severityStyles[riskBand(s.RiskScore)].Render(fmt.Sprintf("%5.1f", s.RiskScore)))
	}

	names := make([]string, 0, len(l.TrendMetrics))
	for name := range l.TrendMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString("\n" + labelStyle.Render("Trends") + "\n")
	}
	for _, name := range names {
		tm := l.TrendMetrics[name]
		fmt.Fprintf(&b, "  %-26s %g -> %g (%+.1f%%)\n", name, tm.First, tm.Last, tm.PctChange)
	}

	if len(l.Alerts) > 0 {
		b.WriteString("\n" + labelStyle.Render("Alerts") + "\n")
	}
	for _, a := range l.Alerts {
		fmt.Fprintf(&b, "  [%s] %s\n", severity(a.Severity), a.Message)
	}
	return b.String()
}

func direction(d model.Direction) string {
	switch d {
	case model.DirectionDeclining:
		return severityStyles[model.SeverityElevated].Render(string(d))
	case model.DirectionImproving:
		return severityStyles[model.SeverityNormal].Render(string(d))
	default:
		return dimStyle.Render(string(d))
	}
}

// History lists a subject's stored risk scores, oldest first.
func History(subject string, points []model.TrendPoint, alerts []model.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render("Subject "+subject), dimStyle.Render(fmt.Sprintf("%d sessions", len(points))))
	if len(points) == 0 {
		b.WriteString(dimStyle.Render("no stored sessions") + "\n")
	}
	for _, p := range points {
		fmt.Fprintf(&b, "  %-12s %-24s %s\n", p.Date, p.SessionID,
			severityStyles[riskBand(p.Value)].Render(fmt.Sprintf("%5.1f", p.Value)))
	}
	if len(alerts) > 0 {
		b.WriteString("\n" + labelStyle.Render("Last alerts") + "\n")
	}
	for _, a := range alerts {
		fmt.Fprintf(&b, "  [%s] %s\n", severity(a.Severity), a.Message)
	}
	return b.String()
}
