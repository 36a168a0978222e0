package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cognitive_screen/internal/markers"
)

const BaseDirName = "CognitiveScreen"

// Settings is the starter config written into a new workspace. Its keys match
// what config.Load reads.
type Settings struct {
	LogLevel            string             `yaml:"log_level"`
	Workers             int                `yaml:"workers"`
	CrossSessionTimeout string             `yaml:"cross_session_timeout"`
	Thresholds          markers.Thresholds `yaml:"thresholds"`
}

func EnsureDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "db"),
		filepath.Join(base, "subjects"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	settingsPath := ConfigPath(base)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		defaults := Settings{
			LogLevel:            "info",
			CrossSessionTimeout: "30s",
			Thresholds:          markers.DefaultThresholds(),
		}
		raw, marshalErr := yaml.Marshal(defaults)
		if marshalErr != nil {
			return "", fmt.Errorf("marshal settings: %w", marshalErr)
		}
		if writeErr := os.WriteFile(settingsPath, raw, 0o644); writeErr != nil {
			return "", fmt.Errorf("write settings: %w", writeErr)
		}
	}

	return base, nil
}

func ConfigPath(root string) string {
	return filepath.Join(root, "configs", "config.yaml")
}

// DBPath is the sqlite history database of a workspace.
func DBPath(root string) string {
	return filepath.Join(root, "db", "history.db")
}
