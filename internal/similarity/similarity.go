// Package similarity scores how alike two sentences are using the
// Ratcliff/Obershelp matching-blocks ratio over their word sequences.
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"

	"cognitive_screen/internal/textnorm"
)

// Ratio returns 2*M/(len(a)+len(b)) where M is the total size of the
// matching blocks. Two empty sequences are identical.
func Ratio(a, b []string) float64 {
	if len(a)+len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}

// Sentences compares two sentences word by word, ignoring case.
func Sentences(a, b string) float64 {
	return Ratio(textnorm.Words(a), textnorm.Words(b))
}
