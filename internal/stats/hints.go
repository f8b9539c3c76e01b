package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/beesolve/internal/model"
)

// Grid counts solutions by first letter and word length.
type Grid struct {
	Letters []string
	Lengths []int
	Counts  map[string]map[int]int
}

// HintsGrid builds the first-letter by length grid. Rows follow the puzzle
// letter order; letters that start no word are kept so the grid is complete.
func HintsGrid(letters string, solutions []model.Solution) Grid {
	grid := Grid{Counts: map[string]map[int]int{}}
	for _, r := range letters {
		grid.Letters = append(grid.Letters, string(r))
		grid.Counts[string(r)] = map[int]int{}
	}
	lengths := map[int]struct{}{}
	for _, s := range solutions {
		first, _ := utf8.DecodeRuneInString(s.Word)
		key := string(first)
		if _, ok := grid.Counts[key]; !ok {
			grid.Letters = append(grid.Letters, key)
			grid.Counts[key] = map[int]int{}
		}
		n := utf8.RuneCountInString(s.Word)
		grid.Counts[key][n]++
		lengths[n] = struct{}{}
	}
	for n := range lengths {
		grid.Lengths = append(grid.Lengths, n)
	}
	sort.Ints(grid.Lengths)
	return grid
}

// TwoLetterCounts counts solutions by their first two runes.
func TwoLetterCounts(solutions []model.Solution) map[string]int {
	out := map[string]int{}
	for _, s := range solutions {
		runes := []rune(s.Word)
		if len(runes) < 2 {
			continue
		}
		out[string(runes[:2])]++
	}
	return out
}

// RenderHints writes the hints grid followed by the two-letter list.
func RenderHints(w io.Writer, letters string, solutions []model.Solution) error {
	grid := HintsGrid(letters, solutions)
	headers := []string{""}
	rightAlign := map[int]bool{}
	for i, n := range grid.Lengths {
		headers = append(headers, strconv.Itoa(n))
		rightAlign[i+1] = true
	}
	headers = append(headers, "Tot")
	rightAlign[len(headers)-1] = true

	colTotals := make([]int, len(grid.Lengths))
	rows := make([][]string, 0, len(grid.Letters)+1)
	grand := 0
	for _, letter := range grid.Letters {
		row := []string{letter}
		rowTotal := 0
		for i, n := range grid.Lengths {
			count := grid.Counts[letter][n]
			rowTotal += count
			colTotals[i] += count
			row = append(row, countCell(count))
		}
		grand += rowTotal
		rows = append(rows, append(row, strconv.Itoa(rowTotal)))
	}
	totals := []string{"Tot"}
	for _, c := range colTotals {
		totals = append(totals, strconv.Itoa(c))
	}
	rows = append(rows, append(totals, strconv.Itoa(grand)))

	if err := (table{headers: headers, rows: rows, rightAlign: rightAlign}).write(w); err != nil {
		return err
	}

	pairs := TwoLetterCounts(solutions)
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s-%d", k, pairs[k]))
	}
	if len(parts) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nTwo letters: %s\n", strings.Join(parts, " "))
	return err
}

func countCell(count int) string {
	if count == 0 {
		return "-"
	}
	return strconv.Itoa(count)
}
