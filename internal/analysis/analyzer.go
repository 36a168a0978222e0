// Package analysis runs the marker detectors over one transcript and
// assembles the immutable session record.
package analysis

import (
	"fmt"
	"time"

	"cognitive_screen/internal/logging"
	"cognitive_screen/internal/markers"
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/scoring"
)

const dateLayout = "2006-01-02"

// Analyzer is safe for concurrent use; its configuration is fixed at New.
type Analyzer struct {
	thresholds markers.Thresholds
	detectors  []markers.Detector
	logger     logging.StageLogger
	now        func() time.Time
}

type Option func(*Analyzer)

func WithThresholds(th markers.Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = th }
}

func WithLogger(l logging.StageLogger) Option {
	return func(a *Analyzer) { a.logger = logging.OrNop(l) }
}

// WithClock sets the source of the default session date.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithDetectors replaces the built-in detector set.
func WithDetectors(ds ...markers.Detector) Option {
	return func(a *Analyzer) { a.detectors = append([]markers.Detector(nil), ds...) }
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		thresholds: markers.DefaultThresholds(),
		detectors:  markers.Default(),
		logger:     logging.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Thresholds() markers.Thresholds { return a.thresholds }

// Defaults fills a missing date with today and a missing id with
// "session-<date>".
func (a *Analyzer) Defaults(sessionID, sessionDate string) (string, string) {
	if sessionDate == "" {
		sessionDate = a.now().Format(dateLayout)
	}
	if sessionID == "" {
		sessionID = "session-" + sessionDate
	}
	return sessionID, sessionDate
}

// Analyze screens one transcript. An empty or non-alphabetic transcript is
// not an error: it yields a zero record with the empty summary.
func (a *Analyzer) Analyze(transcript, sessionID, sessionDate string) model.TranscriptAnalysis {
	sessionID, sessionDate = a.Defaults(sessionID, sessionDate)
	in := markers.NewInput(transcript)

	if len(in.Tokens) == 0 {
		a.logger.Log(logging.LevelInfo, "SESSION", "Transcript has no analyzable words", "session_id="+sessionID)
		return model.TranscriptAnalysis{
			SessionID:       sessionID,
			SessionDate:     sessionDate,
			Summary:         scoring.EmptySummary,
			FlaggedExcerpts: []string{},
			Markers:         []model.Marker{},
			RawMetrics:      map[string]any{},
		}
	}

	a.logger.Log(logging.LevelAnalysis, "SESSION", "Session analysis started",
		fmt.Sprintf("session_id=%s words=%d sentences=%d", sessionID, len(in.Tokens), len(in.Sentences)))

	var found []model.Marker
	raw := map[string]any{}
	for _, d := range a.detectors {
		res := d.Detect(in, a.thresholds)
		found = append(found, res.Markers...)
		for k, v := range res.Metrics {
			raw[k] = v
		}
	}

	risk := scoring.RiskScore(found)
	excerpts := []string{}
	for _, m := range found {
		if !m.Flagged {
			continue
		}
		excerpts = append(excerpts, m.Evidence...)
		a.logger.Log(logging.LevelRisk, "SESSION", "Marker flagged",
			fmt.Sprintf("session_id=%s marker=%s value=%.4f severity=%s", sessionID, m.Name, m.Value, m.Severity))
	}

	unique := make(map[string]struct{}, len(in.Tokens))
	for _, t := range in.Tokens {
		unique[t] = struct{}{}
	}

	a.logger.Log(logging.LevelInfo, "SESSION", "Session analysis finished",
		fmt.Sprintf("session_id=%s risk=%.1f", sessionID, risk))

	return model.TranscriptAnalysis{
		SessionID:       sessionID,
		SessionDate:     sessionDate,
		TotalWords:      len(in.Tokens),
		UniqueWords:     len(unique),
		TotalSentences:  len(in.Sentences),
		RiskScore:       risk,
		Summary:         scoring.SessionSummary(found, risk),
		FlaggedExcerpts: excerpts,
		Markers:         found,
		RawMetrics:      raw,
	}
}

// AnalyzeRequest applies Analyze to a decoded single-session request.
func (a *Analyzer) AnalyzeRequest(req model.SessionRequest) model.TranscriptAnalysis {
	return a.Analyze(req.Transcript, req.SessionID, req.SessionDate)
}
