package textnorm

import (
	"reflect"
	"testing"

	"github.com/dlclark/regexp2"
)

func TestTokenizeDropsNonAlphabetic(t *testing.T) {
	got := Tokenize("I'm going to the 7-Eleven... Don't WORRY! 42 [pause]")
	want := []string{"i'm", "going", "to", "the", "eleven", "don't", "worry", "pause"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize("  123 ... !!! "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestSplitSentencesFiltersShortFragments(t *testing.T) {
	text := "Hello there. I went to the store! Yes. Did you see the game?? Ok then"
	got := SplitSentences(text)
	want := []string{"I went to the store", "Did you see the game"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sentences = %q, want %q", got, want)
	}
}

func TestFindAllUsesRuneOffsets(t *testing.T) {
	re := regexp2.MustCompile(`\bthing\b`, regexp2.None)
	text := "café thing and the thing"
	spans := FindAll(re, text)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	runes := []rune(text)
	if string(runes[spans[0].Start:spans[0].End]) != "thing" {
		t.Fatalf("span does not cover the match: %+v", spans[0])
	}
}

func TestExcerptClampsToBounds(t *testing.T) {
	runes := []rune("um well")
	got := Excerpt(runes, Span{Start: 0, End: 2}, 40)
	if got != "...um well..." {
		t.Fatalf("excerpt = %q", got)
	}
}

func TestBoundedPhraseRespectsWordBoundaries(t *testing.T) {
	re := BoundedPhrase("i think")
	if n := Count(re, "i think so, but hi thinker"); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	if got := Truncate("naïve story", 3); got != "naï" {
		t.Fatalf("truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
