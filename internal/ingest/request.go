package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"cognitive_screen/internal/model"
)

// LoadSessionRequest decodes a single-session request from JSON or YAML.
func LoadSessionRequest(path string) (model.SessionRequest, error) {
	var req model.SessionRequest
	if err := decodeFile(path, &req); err != nil {
		return model.SessionRequest{}, err
	}
	return req, nil
}

// LoadLongitudinalRequest decodes a longitudinal request from JSON or YAML.
func LoadLongitudinalRequest(path string) (model.LongitudinalRequest, error) {
	var req model.LongitudinalRequest
	if err := decodeFile(path, &req); err != nil {
		return model.LongitudinalRequest{}, err
	}
	if len(req.Sessions) == 0 {
		return model.LongitudinalRequest{}, fmt.Errorf("%s: no sessions in request", path)
	}
	return req, nil
}

func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("decode yaml request %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("decode json request %s: %w", path, err)
		}
	}
	return nil
}

// SessionsFromFiles parses each transcript file into a session input. The id
// is the file name without extension.
func SessionsFromFiles(paths []string) ([]model.SessionInput, error) {
	out := make([]model.SessionInput, 0, len(paths))
	for _, p := range paths {
		parsed, err := ParseFile(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, model.SessionInput{Text: parsed.Text, SessionID: parsed.Name, Date: parsed.Date})
	}
	return out, nil
}

// SessionsFromDir turns every supported transcript in dir into a session,
// in file-name order. Subdirectories and other files are ignored.
func SessionsFromDir(dir string) ([]model.SessionInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read transcript dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no transcripts found in %s", dir)
	}
	return SessionsFromFiles(paths)
}
