package render

import (
	"github.com/charmbracelet/lipgloss"

	"cognitive_screen/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	excerptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			PaddingLeft(4)

	severityStyles = map[model.Severity]lipgloss.Style{
		model.SeverityNormal:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		model.SeverityMild:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		model.SeverityModerate: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		model.SeverityElevated: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func severity(s model.Severity) string {
	style, ok := severityStyles[s]
	if !ok {
		return dimStyle.Render(string(s))
	}
	return style.Render(string(s))
}

// riskBand maps a composite score onto the severity palette.
func riskBand(score float64) model.Severity {
	switch {
	case score >= 60:
		return model.SeverityElevated
	case score >= 35:
		return model.SeverityModerate
	case score >= 15:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}
