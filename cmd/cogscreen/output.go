package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cognitive_screen/internal/workspace"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatText:
		return nil
	default:
		return fmt.Errorf("unknown format %q (json, yaml or text)", format)
	}
}

// emit writes v in the requested format to out, or to w when out is empty.
// Text output uses the rendered view instead of v.
func emit(w io.Writer, format, out string, v any, text func() string) error {
	if out != "" {
		if format == formatText {
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(out, []byte(text()), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
		return workspace.SaveReport(withFormatExt(out, format), v)
	}

	switch format {
	case formatText:
		_, err := io.WriteString(w, text())
		return err
	case formatYAML:
		raw, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(raw)
		return err
	default:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
}

// withFormatExt keeps an explicit .json/.yaml/.yml extension and otherwise
// appends the one matching format.
func withFormatExt(path, format string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return path
	}
	if format == formatYAML {
		return path + ".yaml"
	}
	return path + ".json"
}
