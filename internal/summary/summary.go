// Package summary turns screening results into caretaker-facing narratives
// through an OpenAI-compatible chat completion API. The screening engine never
// depends on it.
package summary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/prompts"
)

const (
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 1500
)

type SessionNarrative struct {
	AISummary        string  `json:"ai_summary" yaml:"ai_summary"`
	RiskScore        float64 `json:"risk_score" yaml:"risk_score"`
	RuleBasedSummary string  `json:"rule_based_summary" yaml:"rule_based_summary"`
	SessionID        string  `json:"session_id" yaml:"session_id"`
	SessionDate      string  `json:"session_date" yaml:"session_date"`
}

type LongitudinalNarrative struct {
	AISummary        string          `json:"ai_summary" yaml:"ai_summary"`
	TrendDirection   model.Direction `json:"trend_direction" yaml:"trend_direction"`
	NumSessions      int             `json:"num_sessions" yaml:"num_sessions"`
	Alerts           []model.Alert   `json:"alerts" yaml:"alerts"`
	RuleBasedSummary string          `json:"rule_based_summary" yaml:"rule_based_summary"`
}

type Summarizer interface {
	SummarizeSession(ctx context.Context, a model.TranscriptAnalysis) (SessionNarrative, error)
	SummarizeLongitudinal(ctx context.Context, l *model.LongitudinalAnalysis) (LongitudinalNarrative, error)
}

// OpenAI implements Summarizer against any OpenAI-compatible endpoint.
type OpenAI struct {
	client    openai.Client
	model     string
	baseURL   string
	maxTokens int64
}

type Option func(*OpenAI)

func WithModel(m string) Option {
	return func(o *OpenAI) {
		if m != "" {
			o.model = m
		}
	}
}

// WithBaseURL points the client at Azure, a local server, or a test double.
func WithBaseURL(u string) Option {
	return func(o *OpenAI) {
		o.baseURL = u
	}
}

func WithMaxTokens(n int) Option {
	return func(o *OpenAI) {
		if n > 0 {
			o.maxTokens = int64(n)
		}
	}
}

// NewOpenAI falls back to OPENAI_API_KEY when apiKey is empty.
func NewOpenAI(apiKey string, opts ...Option) (*OpenAI, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("summary: api key is required (config summary.api_key or OPENAI_API_KEY)")
	}

	o := &OpenAI{model: DefaultModel, maxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(1)}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}
	o.client = openai.NewClient(clientOpts...)
	return o, nil
}

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) SummarizeSession(ctx context.Context, a model.TranscriptAnalysis) (SessionNarrative, error) {
	text, err := o.complete(ctx, prompts.SessionPrompt(a), o.maxTokens)
	if err != nil {
		return SessionNarrative{}, fmt.Errorf("summarize session %s: %w", a.SessionID, err)
	}
	return SessionNarrative{
		AISummary:        text,
		RiskScore:        a.RiskScore,
		RuleBasedSummary: a.Summary,
		SessionID:        a.SessionID,
		SessionDate:      a.SessionDate,
	}, nil
}

func (o *OpenAI) SummarizeLongitudinal(ctx context.Context, l *model.LongitudinalAnalysis) (LongitudinalNarrative, error) {
	if l == nil {
		return LongitudinalNarrative{}, fmt.Errorf("summarize longitudinal: nil analysis")
	}
	// Multi-session answers carry a weekly plan and need more room.
	text, err := o.complete(ctx, prompts.LongitudinalPrompt(l), o.maxTokens*4/3)
	if err != nil {
		return LongitudinalNarrative{}, fmt.Errorf("summarize longitudinal: %w", err)
	}
	return LongitudinalNarrative{
		AISummary:        text,
		TrendDirection:   l.TrendDirection,
		NumSessions:      len(l.Sessions),
		Alerts:           l.Alerts,
		RuleBasedSummary: l.Summary,
	}, nil
}

func (o *OpenAI) complete(ctx context.Context, user string, maxTokens int64) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompts.SystemPrompt),
			openai.UserMessage(user),
		},
		Model:               openai.ChatModel(o.model),
		MaxCompletionTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
