package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is written once when a subject directory is created.
type Profile struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Created string `json:"created"`
}

type SubjectInfo struct {
	ID          string
	Name        string
	Root        string
	ReportsDir  string
	ProfilePath string
}

// CreateSubject returns the directory of a monitored person, creating it on
// first use. The id is a short hash of the normalized name.
func CreateSubject(workspaceRoot, name string) (*SubjectInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("subject name is required")
	}
	id := SubjectID(name)
	root := filepath.Join(workspaceRoot, "subjects", id)
	reports := filepath.Join(root, "reports")
	if err := os.MkdirAll(reports, 0o755); err != nil {
		return nil, fmt.Errorf("create subject dir: %w", err)
	}

	profilePath := filepath.Join(root, "profile.json")
	if _, err := os.Stat(profilePath); os.IsNotExist(err) {
		profile := Profile{Name: name, ID: id, Created: time.Now().UTC().Format(time.RFC3339)}
		raw, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal profile: %w", err)
		}
		if err := os.WriteFile(profilePath, raw, 0o644); err != nil {
			return nil, fmt.Errorf("write profile: %w", err)
		}
	}

	return &SubjectInfo{
		ID:          id,
		Name:        name,
		Root:        root,
		ReportsDir:  reports,
		ProfilePath: profilePath,
	}, nil
}

// ReportPath names a report file inside the subject's reports directory.
func (s *SubjectInfo) ReportPath(name, ext string) string {
	return filepath.Join(s.ReportsDir, sanitizeName(name)+"."+strings.TrimPrefix(ext, "."))
}

// SaveReport writes v as YAML when path ends in .yaml or .yml, JSON otherwise.
func SaveReport(path string, v any) error {
	var raw []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(v)
	default:
		raw, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func SubjectID(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "report"
	}
	return strings.ReplaceAll(base, "..", "")
}
