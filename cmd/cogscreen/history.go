package main

import (
	"github.com/spf13/cobra"

	"cognitive_screen/internal/db"
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/render"
)

type historyReport struct {
	Subject  string         `json:"subject" yaml:"subject"`
	Sessions []db.RiskPoint `json:"sessions" yaml:"sessions"`
	Alerts   []model.Alert  `json:"alerts" yaml:"alerts"`
}

func newHistoryCmd(a *app) *cobra.Command {
	var subject, format string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a subject's stored risk scores and latest alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			info, store, err := a.subject(subject)
			if err != nil {
				return err
			}
			defer store.Close()

			points, err := store.RiskHistory(info.ID)
			if err != nil {
				return err
			}
			alerts, err := store.Alerts(info.ID)
			if err != nil {
				return err
			}

			report := historyReport{Subject: info.Name, Sessions: points, Alerts: alerts}
			return emit(a.stdout, format, "", report, func() string {
				trend := make([]model.TrendPoint, len(points))
				for i, p := range points {
					trend[i] = model.TrendPoint{SessionID: p.SessionID, Date: p.SessionDate, Value: p.RiskScore}
				}
				return render.History(info.Name, trend, alerts)
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject name")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: json, yaml or text")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
