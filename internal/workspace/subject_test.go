package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"cognitive_screen/internal/markers"
	"cognitive_screen/internal/model"
)

func TestEnsureAtWritesStarterConfig(t *testing.T) {
	base := filepath.Join(t.TempDir(), BaseDirName)
	root, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	for _, p := range []string{filepath.Join(root, "db"), filepath.Join(root, "subjects"), ConfigPath(root)} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected path to exist %s: %v", p, err)
		}
	}

	raw, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if s.Thresholds != markers.DefaultThresholds() {
		t.Fatalf("unexpected thresholds: %+v", s.Thresholds)
	}
	if filepath.Dir(DBPath(root)) != filepath.Join(root, "db") {
		t.Fatalf("db path = %s", DBPath(root))
	}
}

func TestCreateSubject(t *testing.T) {
	root, err := EnsureAt(filepath.Join(t.TempDir(), BaseDirName))
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}

	subject, err := CreateSubject(root, "Margaret Ellis")
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	for _, p := range []string{subject.Root, subject.ReportsDir, subject.ProfilePath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected path to exist %s: %v", p, err)
		}
	}

	again, err := CreateSubject(root, "  margaret ellis ")
	if err != nil {
		t.Fatalf("create subject again: %v", err)
	}
	if again.ID != subject.ID {
		t.Fatalf("expected stable id, got %s and %s", subject.ID, again.ID)
	}

	if _, err := CreateSubject(root, " "); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestSaveReportByExtension(t *testing.T) {
	dir := t.TempDir()
	a := model.TranscriptAnalysis{SessionID: "call-1", SessionDate: "2024-01-01", RiskScore: 12.5}

	jsonPath := filepath.Join(dir, "reports", "call-1.json")
	if err := SaveReport(jsonPath, a); err != nil {
		t.Fatalf("save json: %v", err)
	}
	raw, _ := os.ReadFile(jsonPath)
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded["session_id"] != "call-1" {
		t.Fatalf("unexpected json: %s", raw)
	}

	yamlPath := filepath.Join(dir, "call-1.yaml")
	if err := SaveReport(yamlPath, a); err != nil {
		t.Fatalf("save yaml: %v", err)
	}
	raw, _ = os.ReadFile(yamlPath)
	if !strings.Contains(string(raw), "risk_score: 12.5") {
		t.Fatalf("unexpected yaml: %s", raw)
	}
}

func TestReportPathSanitizes(t *testing.T) {
	s := &SubjectInfo{ReportsDir: "/tmp/reports"}
	if got := s.ReportPath("../../etc/passwd", "json"); got != filepath.Join("/tmp/reports", "passwd.json") {
		t.Fatalf("report path = %s", got)
	}
}
