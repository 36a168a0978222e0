// Package markers implements the linguistic marker detectors. Each detector is
// a pure function of the normalized transcript and the thresholds.
package markers

import (
	"strings"

	"cognitive_screen/internal/model"
	"cognitive_screen/internal/textnorm"
)

// Input is a transcript normalized once and shared by every detector.
type Input struct {
	Text      string
	Lower     string
	Tokens    []string
	Sentences []string

	textRunes  []rune
	lowerRunes []rune
}

func NewInput(text string) Input {
	lower := strings.ToLower(text)
	return Input{
		Text:       text,
		Lower:      lower,
		Tokens:     textnorm.Tokenize(text),
		Sentences:  textnorm.SplitSentences(text),
		textRunes:  []rune(text),
		lowerRunes: []rune(lower),
	}
}

// Result is what one detector contributes to a session analysis.
type Result struct {
	Metrics map[string]any
	Markers []model.Marker
}

type Detector interface {
	Name() string
	Detect(in Input, th Thresholds) Result
}

type detectorFunc struct {
	name string
	fn   func(Input, Thresholds) Result
}

func (d detectorFunc) Name() string { return d.name }

func (d detectorFunc) Detect(in Input, th Thresholds) Result { return d.fn(in, th) }

// NewDetector wraps a function as a named Detector.
func NewDetector(name string, fn func(Input, Thresholds) Result) Detector {
	return detectorFunc{name: name, fn: fn}
}

// Default returns the six built-in detectors in report order.
func Default() []Detector {
	return []Detector{
		NewDetector("lexical_diversity", LexicalDiversity),
		NewDetector("anomia", Anomia),
		NewDetector("disfluency", Disfluency),
		NewDetector("pronoun_usage", PronounUsage),
		NewDetector("pause_patterns", Pauses),
		NewDetector("repetition", WithinSessionRepetition),
	}
}

const maxEvidence = 5

func capEvidence(evidence []string) []string {
	if len(evidence) > maxEvidence {
		evidence = evidence[:maxEvidence]
	}
	if evidence == nil {
		return []string{}
	}
	return evidence
}
