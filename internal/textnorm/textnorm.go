// Package textnorm turns raw transcript text into word tokens and sentences
// and provides the excerpt helpers shared by the marker detectors.
package textnorm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var wordPattern = regexp.MustCompile(`[a-z]+(?:'[a-z]+)?`)
var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Tokenize lowercases text and returns its word tokens in order. Digits,
// punctuation and other non-alphabetic runs are dropped.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SplitSentences splits on runs of sentence terminators and keeps fragments
// with more than two words.
func SplitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(strings.Fields(p)) <= 2 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Span is a match location in rune offsets.
type Span struct {
	Start int
	End   int
}

// FindAll returns the non-overlapping matches of re in text. regexp2 reports
// rune offsets, which keeps excerpts aligned on multi-byte input.
func FindAll(re *regexp2.Regexp, text string) []Span {
	var out []Span
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		out = append(out, Span{Start: m.Index, End: m.Index + m.Length})
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		panic(fmt.Sprintf("textnorm: match %q: %v", re.String(), err))
	}
	return out
}

// Count returns the number of non-overlapping matches of re in text.
func Count(re *regexp2.Regexp, text string) int {
	return len(FindAll(re, text))
}

// BoundedPhrase compiles a case-sensitive, word-boundary pattern for a
// literal phrase.
func BoundedPhrase(phrase string) *regexp2.Regexp {
	return regexp2.MustCompile(`\b`+regexp2.Escape(phrase)+`\b`, regexp2.None)
}

// Excerpt returns the span widened by radius runes on each side, wrapped in
// ellipses.
func Excerpt(runes []rune, s Span, radius int) string {
	start := max(0, s.Start-radius)
	end := min(len(runes), s.End+radius)
	return "..." + string(runes[start:end]) + "..."
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Words lowercases a sentence and splits it on whitespace.
func Words(sentence string) []string {
	return strings.Fields(strings.ToLower(sentence))
}
