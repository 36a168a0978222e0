package summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cognitive_screen/internal/model"
)

type capturedRequest struct {
	Model               string `json:"model"`
	MaxCompletionTokens int64  `json:"max_completion_tokens"`
	Messages            []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func fakeServer(t *testing.T, reply string, status int, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		if got != nil {
			_ = json.Unmarshal(raw, got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
			return
		}
		body, _ := json.Marshal(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSummarizeSession(t *testing.T) {
	var got capturedRequest
	srv := fakeServer(t, "  All looks steady.  ", http.StatusOK, &got)

	s, err := NewOpenAI("test-key", WithBaseURL(srv.URL+"/"), WithModel("test-model"), WithMaxTokens(300))
	require.NoError(t, err)

	a := model.TranscriptAnalysis{SessionID: "call-1", SessionDate: "2024-01-01", RiskScore: 8.2, Summary: "Low risk."}
	n, err := s.SummarizeSession(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, "All looks steady.", n.AISummary)
	assert.Equal(t, 8.2, n.RiskScore)
	assert.Equal(t, "Low risk.", n.RuleBasedSummary)
	assert.Equal(t, "call-1", n.SessionID)
	assert.Equal(t, "2024-01-01", n.SessionDate)

	assert.Equal(t, "test-model", got.Model)
	assert.EqualValues(t, 300, got.MaxCompletionTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "**Session:** call-1")
}

func TestSummarizeLongitudinal(t *testing.T) {
	srv := fakeServer(t, "Things are stable.", http.StatusOK, nil)
	s, err := NewOpenAI("test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	l := &model.LongitudinalAnalysis{
		TrendDirection: model.DirectionStable,
		Summary:        "Stable.",
		Alerts:         []model.Alert{{Type: model.AlertRiskScoreIncrease, Severity: model.SeverityModerate, Message: "up"}},
		Sessions:       []model.TranscriptAnalysis{{SessionID: "a"}, {SessionID: "b"}},
	}
	n, err := s.SummarizeLongitudinal(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, "Things are stable.", n.AISummary)
	assert.Equal(t, model.DirectionStable, n.TrendDirection)
	assert.Equal(t, 2, n.NumSessions)
	assert.Len(t, n.Alerts, 1)
	assert.Equal(t, "Stable.", n.RuleBasedSummary)
}

func TestSummarizeServerError(t *testing.T) {
	srv := fakeServer(t, "", http.StatusBadRequest, nil)
	s, err := NewOpenAI("test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = s.SummarizeSession(context.Background(), model.TranscriptAnalysis{SessionID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarize session x")
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewOpenAI("")
	require.Error(t, err)
}

func TestNewOpenAIFallsBackToEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	s, err := NewOpenAI("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.Model())
}
