package solver

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/beesolve/internal/model"
)

const (
	lengthOffset = 3
	pangramBonus = 7
)

// CanMakeWord reports whether every rune of word is in letters and word
// contains center at least once. Matching is case-sensitive and repeated
// runes are allowed.
func CanMakeWord(letters string, center rune, word string) bool {
	if !strings.ContainsRune(word, center) {
		return false
	}
	for _, r := range word {
		if !strings.ContainsRune(letters, r) {
			return false
		}
	}
	return true
}

// IsPangram reports whether word uses every rune of letters.
func IsPangram(letters, word string) bool {
	for _, r := range letters {
		if !strings.ContainsRune(word, r) {
			return false
		}
	}
	return true
}

// Score returns the word length minus three, plus seven for a pangram.
// Words shorter than three runes score negative.
func Score(letters, word string) int {
	return score(word, IsPangram(letters, word))
}

func score(word string, pangram bool) int {
	s := utf8.RuneCountInString(word) - lengthOffset
	if pangram {
		s += pangramBonus
	}
	return s
}

// Rank keeps the admissible words and orders them by descending score, then
// by collated spelling. Equal entries keep their dictionary order.
func Rank(words []string, letters string, center rune) []model.Solution {
	out := make([]model.Solution, 0)
	for _, word := range words {
		if !CanMakeWord(letters, center, word) {
			continue
		}
		pangram := IsPangram(letters, word)
		out = append(out, model.Solution{
			Word:    word,
			Pangram: pangram,
			Score:   score(word, pangram),
		})
	}
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return col.CompareString(out[i].Word, out[j].Word) < 0
	})
	return out
}

// Solve ranks dict against the puzzle.
func Solve(p model.Puzzle, dict []string) []model.Solution {
	return Rank(dict, p.Letters, p.Center)
}

// LetterMask sets bit n for the n-th letter of A-Z found in s. Any other
// rune sets bit 31.
func LetterMask(s string) uint32 {
	var mask uint32
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			mask |= 1 << uint(r-'A')
			continue
		}
		mask |= 1 << 31
	}
	return mask
}
