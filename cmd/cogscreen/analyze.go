package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cognitive_screen/internal/ingest"
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/render"
	"cognitive_screen/internal/summary"
	"cognitive_screen/internal/workspace"
)

type sessionReport struct {
	Analysis  model.TranscriptAnalysis  `json:"analysis" yaml:"analysis"`
	Narrative *summary.SessionNarrative `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		sessionID, date, request, subject string
		format, out                       string
		aiSummary                         bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Analyze a single transcript",
		Long: "Analyze one transcript (.txt, .md, .docx, .pdf, or - for stdin) or a JSON/YAML\n" +
			"request file. With --subject the result is stored in the subject's history.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			req, err := sessionRequest(cmd.InOrStdin(), request, args)
			if err != nil {
				return err
			}
			if sessionID != "" {
				req.SessionID = sessionID
			}
			if date != "" {
				req.SessionDate = date
			}

			result := a.analyzer().AnalyzeRequest(req)

			if subject != "" {
				info, store, err := a.subject(subject)
				if err != nil {
					return err
				}
				defer store.Close()
				if _, err := store.SaveAnalysis(info.ID, req.Transcript, result); err != nil {
					return err
				}
				if err := workspace.SaveReport(info.ReportPath(result.SessionID, "json"), result); err != nil {
					return err
				}
				a.log.WithField("subject", info.ID).WithField("session", result.SessionID).Info("stored session analysis")
			}

			report := sessionReport{Analysis: result}
			if aiSummary {
				s, err := a.summarizer()
				if err != nil {
					return err
				}
				n, err := s.SummarizeSession(cmd.Context(), result)
				if err != nil {
					return err
				}
				report.Narrative = &n
			}

			var v any = result
			if report.Narrative != nil {
				v = report
			}
			return emit(a.stdout, format, out, v, func() string {
				text := render.Session(result)
				if report.Narrative != nil {
					text += "\n" + report.Narrative.AISummary + "\n"
				}
				return text
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&sessionID, "session-id", "", "session id (default session-<date>)")
	f.StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	f.StringVar(&request, "request", "", "JSON or YAML session request file")
	f.StringVar(&subject, "subject", "", "store the result in this subject's history")
	f.StringVar(&format, "format", formatJSON, "output format: json, yaml or text")
	f.StringVar(&out, "out", "", "write the result to this file instead of stdout")
	f.BoolVar(&aiSummary, "ai-summary", false, "add a caretaker narrative from the summary model")
	return cmd
}

func sessionRequest(stdin io.Reader, request string, args []string) (model.SessionRequest, error) {
	switch {
	case request != "":
		return ingest.LoadSessionRequest(request)
	case len(args) == 1 && args[0] == "-":
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return model.SessionRequest{}, fmt.Errorf("read stdin: %w", err)
		}
		return model.SessionRequest{Transcript: string(raw)}, nil
	case len(args) == 1:
		parsed, err := ingest.ParseFile(args[0])
		if err != nil {
			return model.SessionRequest{}, err
		}
		return model.SessionRequest{Transcript: parsed.Text, SessionID: parsed.Name, SessionDate: parsed.Date}, nil
	default:
		return model.SessionRequest{}, fmt.Errorf("provide a transcript file, - for stdin, or --request")
	}
}
