package offline

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"cognitive_screen/internal/analysis"
	"cognitive_screen/internal/db"
	"cognitive_screen/internal/longitudinal"
	"cognitive_screen/internal/model"
)

type failTransport struct{}

func (f failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network disabled for offline test")
}

func TestOfflineMode(t *testing.T) {
	original := http.DefaultTransport
	http.DefaultTransport = failTransport{}
	t.Cleanup(func() { http.DefaultTransport = original })

	first := "Um, we went to the, you know, the thing... I went -- I went to the store. It was nice."
	second := "Well I think the weather was nice today and we walked by the river together."

	a := analysis.New().Analyze(first, "call-1", "2024-01-01")
	if len(a.Markers) == 0 || a.TotalWords == 0 {
		t.Fatal("expected session analysis to work offline")
	}

	l, err := longitudinal.New(nil).Analyze(context.Background(), []model.SessionInput{
		{Text: second, SessionID: "call-2", Date: "2024-02-01"},
		{Text: first, SessionID: "call-1", Date: "2024-01-01"},
	})
	if err != nil {
		t.Fatalf("longitudinal analysis: %v", err)
	}
	if len(l.Sessions) != 2 || l.Sessions[0].SessionID != "call-1" {
		t.Fatal("expected longitudinal analysis to work offline")
	}

	store, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveAnalysis("subject", first, a); err != nil {
		t.Fatalf("expected history store to work offline: %v", err)
	}
}
