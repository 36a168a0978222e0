package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cognitive_screen/internal/ingest"
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/render"
	"cognitive_screen/internal/summary"
)

type longitudinalReport struct {
	Analysis  *model.LongitudinalAnalysis    `json:"analysis" yaml:"analysis"`
	Narrative *summary.LongitudinalNarrative `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

func newLongitudinalCmd(a *app) *cobra.Command {
	var (
		request, dir, subject string
		format, out           string
		aiSummary             bool
	)
	cmd := &cobra.Command{
		Use:   "longitudinal [files...]",
		Short: "Compare a series of transcripts over time",
		Long: "Analyze several sessions together from files, a directory, or a JSON/YAML\n" +
			"request. With --subject the new sessions are merged into the subject's stored\n" +
			"history, and with no other input the stored history alone is analyzed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			inputs, err := longitudinalInputs(request, dir, args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 && subject == "" {
				return fmt.Errorf("provide transcript files, --dir, --request, or --subject")
			}

			an := a.analyzer()
			for i, in := range inputs {
				inputs[i].SessionID, inputs[i].Date = an.Defaults(in.SessionID, in.Date)
			}

			var result *model.LongitudinalAnalysis
			if subject != "" {
				if err := uniqueSessionIDs(inputs); err != nil {
					return err
				}
				info, store, err := a.subject(subject)
				if err != nil {
					return err
				}
				defer store.Close()

				stored, err := store.Sessions(info.ID)
				if err != nil {
					return err
				}
				all := mergeSessions(stored, inputs)
				if len(all) == 0 {
					return fmt.Errorf("subject %q has no stored sessions", subject)
				}
				result, err = a.longitudinal(an).Analyze(cmd.Context(), all)
				if err != nil {
					return err
				}

				texts := make(map[string]string, len(inputs))
				for _, in := range inputs {
					texts[in.SessionID] = in.Text
				}
				for _, s := range result.Sessions {
					text, ok := texts[s.SessionID]
					if !ok {
						continue
					}
					if _, err := store.SaveAnalysis(info.ID, text, s); err != nil {
						return err
					}
				}
				if err := store.SaveAlerts(info.ID, result.Alerts); err != nil {
					return err
				}
				a.log.WithField("subject", info.ID).WithField("sessions", len(result.Sessions)).Info("stored longitudinal analysis")
			} else {
				result, err = a.longitudinal(an).Analyze(cmd.Context(), inputs)
				if err != nil {
					return err
				}
			}

			report := longitudinalReport{Analysis: result}
			if aiSummary {
				s, err := a.summarizer()
				if err != nil {
					return err
				}
				n, err := s.SummarizeLongitudinal(cmd.Context(), result)
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
				text := render.Longitudinal(result)
				if report.Narrative != nil {
					text += "\n" + report.Narrative.AISummary + "\n"
				}
				return text
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&request, "request", "", "JSON or YAML longitudinal request file")
	f.StringVar(&dir, "dir", "", "directory of transcripts, one session per file")
	f.StringVar(&subject, "subject", "", "merge with and store into this subject's history")
	f.StringVar(&format, "format", formatJSON, "output format: json, yaml or text")
	f.StringVar(&out, "out", "", "write the result to this file instead of stdout")
	f.BoolVar(&aiSummary, "ai-summary", false, "add a caretaker narrative from the summary model")
	return cmd
}

func longitudinalInputs(request, dir string, files []string) ([]model.SessionInput, error) {
	var inputs []model.SessionInput
	if request != "" {
		req, err := ingest.LoadLongitudinalRequest(request)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, req.Sessions...)
	}
	if dir != "" {
		sessions, err := ingest.SessionsFromDir(dir)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, sessions...)
	}
	if len(files) > 0 {
		sessions, err := ingest.SessionsFromFiles(files)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, sessions...)
	}
	return inputs, nil
}

// uniqueSessionIDs rejects a batch where two sessions resolve to the same id,
// since storing them would overwrite one with the other.
func uniqueSessionIDs(inputs []model.SessionInput) error {
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.SessionID] {
			return fmt.Errorf("duplicate session id %q in input; set session_id explicitly", in.SessionID)
		}
		seen[in.SessionID] = true
	}
	return nil
}

// mergeSessions keeps stored order and lets a new session replace a stored
// one with the same id.
func mergeSessions(stored, fresh []model.SessionInput) []model.SessionInput {
	index := make(map[string]int, len(stored)+len(fresh))
	out := make([]model.SessionInput, 0, len(stored)+len(fresh))
	for _, s := range append(append([]model.SessionInput{}, stored...), fresh...) {
		if i, ok := index[s.SessionID]; ok {
			out[i] = s
			continue
		}
		index[s.SessionID] = len(out)
		out = append(out, s)
	}
	return out
}
