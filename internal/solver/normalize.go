// Package solver filters and ranks dictionary words for a seven-letter puzzle.
package solver

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PuzzleSize is the number of unique letters in a puzzle.
const PuzzleSize = 7

// Casers and collators keep internal buffers, so each call builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// Normalize upper-folds raw, keeps only A-Z, drops repeated letters and
// returns the remaining letters in collation order. It never fails; input
// without any A-Z letters yields the empty string.
func Normalize(raw string) string {
	upper := cases.Upper(language.Und).String(raw)
	seen := make(map[rune]struct{}, PuzzleSize)
	letters := make([]string, 0, len(upper))
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		letters = append(letters, string(r))
	}
	col := newCollator()
	sort.SliceStable(letters, func(i, j int) bool {
		return col.CompareString(letters[i], letters[j]) < 0
	})
	return strings.Join(letters, "")
}

// Upper folds a dictionary word to the puzzle's letter casing.
func Upper(word string) string {
	return cases.Upper(language.Und).String(word)
}

// Lower folds a word for display.
func Lower(word string) string {
	return cases.Lower(language.Und).String(word)
}
