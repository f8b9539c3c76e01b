// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"github.com/verte-zerg/beesolve/internal/solver"
)

// DefaultMinLength is the shortest word a puzzle accepts.
const DefaultMinLength = 4

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Admit returns a filter for upper-case words made only of A-Z that are at
// least minLength long. A minLength of 0 disables the length check.
func Admit(minLength int) FilterFunc {
	return func(word string) bool {
		if word == "" || len(word) < minLength {
			return false
		}
		for i := 0; i < len(word); i++ {
			ch := word[i]
			if ch < 'A' || ch > 'Z' {
				return false
			}
		}
		return true
	}
}

// Prepare upper-folds words and drops the ones Admit rejects. Dictionary
// order and repeated entries are kept.
func Prepare(words []string, minLength int) []string {
	admit := Admit(minLength)
	out := make([]string, 0, len(words))
	for _, word := range words {
		word = solver.Upper(word)
		if admit(word) {
			out = append(out, word)
		}
	}
	return out
}

// PangramCapable reports whether word has at most PuzzleSize distinct letters.
func PangramCapable(word string) bool {
	return DistinctLetters(word) <= solver.PuzzleSize
}

// DistinctLetters counts the distinct A-Z letters of an upper-case word.
func DistinctLetters(word string) int {
	mask := solver.LetterMask(word) &^ (1 << 31)
	count := 0
	for mask != 0 {
		mask &= mask - 1
		count++
	}
	return count
}
