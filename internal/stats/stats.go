// Package stats summarizes a ranked solution list.
package stats

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/solver"
)

// Summary aggregates a solution list.
type Summary struct {
	Words           int
	Pangrams        int
	PerfectPangrams int
	Total           int
}

// Rank is a named score threshold.
type Rank struct {
	Name  string
	Score int
}

var rankSteps = []struct {
	name string
	pct  float64
}{
	{"Beginner", 0},
	{"Good Start", 0.02},
	{"Moving Up", 0.05},
	{"Good", 0.08},
	{"Solid", 0.15},
	{"Nice", 0.25},
	{"Great", 0.40},
	{"Amazing", 0.50},
	{"Genius", 0.70},
	{"Queen Bee", 1},
}

// Summarize counts words, pangrams and the total score. A perfect pangram
// uses each letter exactly once.
func Summarize(solutions []model.Solution) Summary {
	var sum Summary
	for _, s := range solutions {
		sum.Words++
		sum.Total += s.Score
		if s.Pangram {
			sum.Pangrams++
			if utf8.RuneCountInString(s.Word) == solver.PuzzleSize {
				sum.PerfectPangrams++
			}
		}
	}
	return sum
}

// Ranks returns the score needed for each rank given the total available.
func Ranks(total int) []Rank {
	out := make([]Rank, 0, len(rankSteps))
	for _, step := range rankSteps {
		out = append(out, Rank{Name: step.name, Score: int(math.Round(float64(total) * step.pct))})
	}
	return out
}

// RenderSummary writes the summary and rank thresholds.
func RenderSummary(w io.Writer, sum Summary) error {
	if _, err := fmt.Fprintf(w, "Words: %d  Pangrams: %d (perfect %d)  Points: %d\n",
		sum.Words, sum.Pangrams, sum.PerfectPangrams, sum.Total); err != nil {
		return err
	}
	ranks := Ranks(sum.Total)
	rows := make([][]string, 0, len(ranks))
	for _, r := range ranks {
		rows = append(rows, []string{r.Name, fmt.Sprintf("%d", r.Score)})
	}
	return table{headers: []string{"Rank", "Points"}, rows: rows, rightAlign: map[int]bool{1: true}}.write(w)
}
