package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestStageMapsLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	s := Stage(logger)
	s.Log(LevelRisk, "SESSION", "marker flagged", "marker=pause_rate")
	s.Log(LevelAnalysis, "SESSION", "detectors finished", "")

	out := buf.String()
	if !strings.Contains(out, "level=warning") || !strings.Contains(out, `msg="marker flagged"`) {
		t.Fatalf("expected warn entry, got %s", out)
	}
	if !strings.Contains(out, "detail=\"marker=pause_rate\"") || !strings.Contains(out, "stage=SESSION") {
		t.Fatalf("expected stage fields, got %s", out)
	}
	if !strings.Contains(out, "level=debug") {
		t.Fatalf("expected debug entry, got %s", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", nil); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestOrNop(t *testing.T) {
	OrNop(nil).Log(LevelInfo, "X", "ignored", "")
}
