package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cognitive_screen/internal/model"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeTranscript(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(text), 0o644))
	return p
}

func TestAnalyzeFileToJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeTranscript(t, dir, "2024-03-05-call.txt", "We walked by the river and watched the boats. The weather was lovely.")
	out := filepath.Join(dir, "report.json")

	_, err := run(t, "", "analyze", p, "--out", out, "--workspace", filepath.Join(dir, "ws"))
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var a model.TranscriptAnalysis
	require.NoError(t, json.Unmarshal(raw, &a))
	assert.Equal(t, "2024-03-05-call", a.SessionID)
	assert.Equal(t, "2024-03-05", a.SessionDate)
	assert.Len(t, a.Markers, 7)
	assert.Positive(t, a.TotalWords)
}

func TestAnalyzeStdin(t *testing.T) {
	stdout, err := run(t, "Um, I think... the thing, you know.", "analyze", "-", "--session-id", "call-x", "--date", "2024-01-02")
	require.NoError(t, err)

	var a model.TranscriptAnalysis
	require.NoError(t, json.Unmarshal([]byte(stdout), &a))
	assert.Equal(t, "call-x", a.SessionID)
	assert.Equal(t, "2024-01-02", a.SessionDate)
}

func TestAnalyzeRequiresInput(t *testing.T) {
	_, err := run(t, "", "analyze")
	require.Error(t, err)
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "hello", "analyze", "-", "--format", "xml")
	require.Error(t, err)
}

func TestLongitudinalWithSubjectThenHistory(t *testing.T) {
	dir := t.TempDir()
	ws := filepath.Join(dir, "ws")
	first := writeTranscript(t, dir, "2024-01-01-call.txt", "We walked by the river and watched the boats. The weather was lovely.")
	second := writeTranscript(t, dir, "2024-02-01-call.txt", "We baked bread in the morning and then visited the neighbours for tea.")

	stdout, err := run(t, "", "longitudinal", second, first, "--subject", "Ann Lee", "--workspace", ws)
	require.NoError(t, err)

	var l model.LongitudinalAnalysis
	require.NoError(t, json.Unmarshal([]byte(stdout), &l))
	require.Len(t, l.Sessions, 2)
	assert.Equal(t, "2024-01-01-call", l.Sessions[0].SessionID)

	stdout, err = run(t, "", "history", "--subject", "Ann Lee", "--workspace", ws, "--format", "json")
	require.NoError(t, err)
	var h historyReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &h))
	require.Len(t, h.Sessions, 2)
	assert.Equal(t, "2024-02-01", h.Sessions[1].SessionDate)

	// Stored history alone is enough for a second run.
	stdout, err = run(t, "", "longitudinal", "--subject", "ann lee", "--workspace", ws)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &l))
	assert.Len(t, l.Sessions, 2)
}

func TestLongitudinalSubjectRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	ws := filepath.Join(dir, "ws")
	req := writeTranscript(t, dir, "series.yaml", `
sessions:
  - text: We walked by the river and watched the boats.
    date: "2024-01-01"
  - text: We baked bread in the morning and visited the neighbours.
    date: "2024-01-01"
`)

	_, err := run(t, "", "longitudinal", "--request", req, "--subject", "Ann Lee", "--workspace", ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session-2024-01-01")

	stdout, err := run(t, "", "history", "--subject", "Ann Lee", "--workspace", ws, "--format", "json")
	require.NoError(t, err)
	var h historyReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &h))
	assert.Empty(t, h.Sessions)

	// Without a subject nothing is stored, so both sessions are analyzed.
	stdout, err = run(t, "", "longitudinal", "--request", req)
	require.NoError(t, err)
	var l model.LongitudinalAnalysis
	require.NoError(t, json.Unmarshal([]byte(stdout), &l))
	assert.Len(t, l.Sessions, 2)
}

func TestLongitudinalRequiresInput(t *testing.T) {
	_, err := run(t, "", "longitudinal")
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	ws := filepath.Join(t.TempDir(), "ws")
	stdout, err := run(t, "", "init", "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Clean(ws))
	_, err = os.Stat(filepath.Join(ws, "configs", "config.yaml"))
	require.NoError(t, err)
}

func TestMergeSessions(t *testing.T) {
	stored := []model.SessionInput{{SessionID: "a", Text: "old"}, {SessionID: "b", Text: "b"}}
	fresh := []model.SessionInput{{SessionID: "a", Text: "new"}, {SessionID: "c", Text: "c"}}
	got := mergeSessions(stored, fresh)
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].Text)
	assert.Equal(t, "c", got[2].SessionID)
}
