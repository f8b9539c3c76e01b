// Package generator builds random puzzles from a dictionary.
package generator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/solver"
	"github.com/verte-zerg/beesolve/internal/wordlist"
)

// ErrNoSeedWords is returned when the dictionary has no word with exactly
// seven distinct letters.
var ErrNoSeedWords = errors.New("dictionary has no pangram seed words")

// ErrNoPuzzle is returned when no seed yields enough solutions.
var ErrNoPuzzle = errors.New("no puzzle with enough solutions found")

const maxAttempts = 200

// Generator produces random puzzles.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// SeedWords returns the prepared words that use exactly seven distinct letters.
func SeedWords(words []string) []string {
	seeds := make([]string, 0)
	for _, word := range words {
		if wordlist.DistinctLetters(word) == solver.PuzzleSize && solver.LetterMask(word)&(1<<31) == 0 {
			seeds = append(seeds, word)
		}
	}
	return seeds
}

// Generate picks a seed word, uses its letters as the puzzle and a random
// one of them as the center. Puzzles with fewer than minWords solutions are
// rejected and retried.
func (g *Generator) Generate(words []string, minWords int) (model.Puzzle, error) {
	seeds := SeedWords(words)
	if len(seeds) == 0 {
		return model.Puzzle{}, ErrNoSeedWords
	}
	for i := 0; i < maxAttempts; i++ {
		seed := seeds[g.rnd.Intn(len(seeds))]
		letters := []rune(solver.Normalize(seed))
		p := model.Puzzle{
			Letters: string(letters),
			Center:  letters[g.rnd.Intn(len(letters))],
		}
		if minWords <= 0 || len(solver.Solve(p, words)) >= minWords {
			return p, nil
		}
	}
	return model.Puzzle{}, ErrNoPuzzle
}
