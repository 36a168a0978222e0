// Package longitudinal analyzes a series of sessions from the same speaker
// and reports how the markers move over time.
package longitudinal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cognitive_screen/internal/analysis"
	"cognitive_screen/internal/logging"
	"cognitive_screen/internal/model"
	"cognitive_screen/internal/narrative"
	"cognitive_screen/internal/pipeline"
	"cognitive_screen/internal/scoring"
	"cognitive_screen/internal/trend"
)

// Analyzer orchestrates per-session analysis, trends and narrative repeats.
type Analyzer struct {
	sessions *analysis.Analyzer
	workers  int
	timeout  time.Duration
	logger   logging.StageLogger
}

type Option func(*Analyzer)

// WithWorkers bounds the worker pools; zero or less uses one worker per CPU.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// WithCrossSessionTimeout bounds the cross-session repetition step only.
// Zero disables the timeout.
func WithCrossSessionTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

func WithLogger(l logging.StageLogger) Option {
	return func(a *Analyzer) { a.logger = logging.OrNop(l) }
}

func New(sessions *analysis.Analyzer, opts ...Option) *Analyzer {
	if sessions == nil {
		sessions = analysis.New()
	}
	a := &Analyzer{sessions: sessions, logger: logging.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the session analyzer over every input in parallel, orders the
// results by date and derives trends, alerts and the summary.
func (a *Analyzer) Analyze(ctx context.Context, inputs []model.SessionInput) (*model.LongitudinalAnalysis, error) {
	resolved := make([]model.SessionInput, len(inputs))
	for i, in := range inputs {
		id, date := a.sessions.Defaults(in.SessionID, in.Date)
		resolved[i] = model.SessionInput{Text: in.Text, SessionID: id, Date: date}
	}

	a.logger.Log(logging.LevelInfo, "LONGITUDINAL", "Longitudinal analysis started", fmt.Sprintf("sessions=%d", len(resolved)))

	analyses := make([]model.TranscriptAnalysis, len(resolved))
	errs := pipeline.Run(ctx, len(resolved), a.workers, func(_ context.Context, i int) error {
		s := resolved[i]
		analyses[i] = a.sessions.Analyze(s.Text, s.SessionID, s.Date)
		return nil
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("analyze sessions: %w", errs[0])
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].SessionDate < analyses[j].SessionDate
	})

	trends := trend.Compute(analyses)
	alerts := trend.Alerts(analyses, trends)

	repeats, err := a.crossSession(ctx, resolved)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, repeats...)

	direction := trend.Direction(trends)
	for _, al := range alerts {
		a.logger.Log(logging.LevelRisk, "LONGITUDINAL", "Alert raised", fmt.Sprintf("type=%s severity=%s", al.Type, al.Severity))
	}
	a.logger.Log(logging.LevelInfo, "LONGITUDINAL", "Longitudinal analysis finished",
		fmt.Sprintf("sessions=%d alerts=%d trend=%s", len(analyses), len(alerts), direction))

	return &model.LongitudinalAnalysis{
		Sessions:       analyses,
		TrendDirection: direction,
		TrendMetrics:   trends,
		Alerts:         alerts,
		Summary:        scoring.LongitudinalSummary(analyses, direction, alerts),
	}, nil
}

// AnalyzeRequest applies Analyze to a decoded longitudinal request.
func (a *Analyzer) AnalyzeRequest(ctx context.Context, req model.LongitudinalRequest) (*model.LongitudinalAnalysis, error) {
	return a.Analyze(ctx, req.Sessions)
}

// crossSession compares the raw inputs in their original order.
func (a *Analyzer) crossSession(ctx context.Context, inputs []model.SessionInput) ([]model.Alert, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	sessions := make([]narrative.Session, len(inputs))
	for i, in := range inputs {
		sessions[i] = narrative.Session{ID: in.SessionID, Text: in.Text}
	}
	started := time.Now()
	alerts, err := narrative.Detect(ctx, sessions, a.sessions.Thresholds().RepetitionSimilarity, a.workers)
	if err != nil {
		return nil, err
	}
	a.logger.Log(logging.LevelAnalysis, "LONGITUDINAL", "Cross-session comparison finished",
		fmt.Sprintf("pairs=%d matches=%d duration_ms=%d", len(inputs)*(len(inputs)-1)/2, len(alerts), time.Since(started).Milliseconds()))
	return alerts, nil
}
