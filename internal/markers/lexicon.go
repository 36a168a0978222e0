package markers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"cognitive_screen/internal/textnorm"
)

//go:embed lexicon.json
var lexiconJSON []byte

type wordSet map[string]struct{}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

type phrasePattern struct {
	phrase string
	re     *regexp2.Regexp
}

// lexicon is decoded once at init and never written afterwards.
type lexicon struct {
	singleFillers    []phrasePattern
	singleFillerSet  wordSet
	multiFillers     []phrasePattern
	hedges           []phrasePattern
	personalPronouns wordSet
	genericPronouns  wordSet
	repeatExempt     wordSet
}

var lex = mustLoadLexicon(lexiconJSON)

func mustLoadLexicon(raw []byte) lexicon {
	var doc struct {
		SingleFillers    []string `json:"single_fillers"`
		MultiFillers     []string `json:"multi_fillers"`
		Hedges           []string `json:"hedges"`
		PersonalPronouns []string `json:"personal_pronouns"`
		GenericPronouns  []string `json:"generic_pronouns"`
		RepeatExempt     []string `json:"repeat_exempt"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("markers: decode lexicon: %v", err))
	}
	return lexicon{
		singleFillers:    compilePhrases(doc.SingleFillers),
		singleFillerSet:  newWordSet(doc.SingleFillers),
		multiFillers:     compilePhrases(doc.MultiFillers),
		hedges:           compilePhrases(doc.Hedges),
		personalPronouns: newWordSet(doc.PersonalPronouns),
		genericPronouns:  newWordSet(doc.GenericPronouns),
		repeatExempt:     newWordSet(doc.RepeatExempt),
	}
}

func newWordSet(words []string) wordSet {
	out := make(wordSet, len(words))
	for _, w := range words {
		out[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return out
}

func compilePhrases(phrases []string) []phrasePattern {
	out := make([]phrasePattern, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		out = append(out, phrasePattern{phrase: p, re: textnorm.BoundedPhrase(p)})
	}
	return out
}

var pausePatterns = mustCompileAll(regexp2.IgnoreCase,
	`\.\.\.`,
	`\[pause\]`,
	`\[long pause\]`,
	`\[silence\]`,
	`\.{4,}`,
	`\(pause\)`,
	`—{2,}`,
)

// Self-repair ("i was -- i was"), pronoun-led restart ("i went -- ") and
// comma-joined repeat ("the, the"). The backreferences need regexp2.
var falseStartPatterns = mustCompileAll(regexp2.None,
	`\b(\w+)\s+--\s+\1`,
	`\b(i|he|she|we|they)\s+\w+\s+--\s+`,
	`\b(\w+)\s*,\s*\1\b`,
)

func mustCompileAll(opts regexp2.RegexOptions, patterns ...string) []*regexp2.Regexp {
	out := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp2.MustCompile(p, opts))
	}
	return out
}
