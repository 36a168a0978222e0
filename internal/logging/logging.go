package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Stage levels used by the analyzers.
const (
	LevelInfo     = "INFO"
	LevelAnalysis = "ANALYSIS"
	LevelRisk     = "RISK"
)

// StageLogger receives progress events from the analyzers.
type StageLogger interface {
	Log(level, stage, message, detail string)
}

// New builds a text logger writing to w (stderr when nil).
func New(level string, w io.Writer) (*logrus.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := logrus.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return logger, nil
}

type stageAdapter struct {
	entry *logrus.Entry
}

// Stage adapts a logrus logger or entry to StageLogger. RISK maps to warn,
// ANALYSIS to debug and everything else to info.
func Stage(l logrus.FieldLogger) StageLogger {
	return stageAdapter{entry: l.WithField("component", "screen")}
}

func (s stageAdapter) Log(level, stage, message, detail string) {
	e := s.entry.WithField("stage", stage)
	if detail != "" {
		e = e.WithField("detail", detail)
	}
	switch strings.ToUpper(level) {
	case LevelRisk:
		e.Warn(message)
	case LevelAnalysis:
		e.Debug(message)
	default:
		e.Info(message)
	}
}

type nop struct{}

func (nop) Log(string, string, string, string) {}

// Nop discards every event.
func Nop() StageLogger { return nop{} }

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l StageLogger) StageLogger {
	if l == nil {
		return nop{}
	}
	return l
}
