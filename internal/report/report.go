// Package report renders ranked solutions for terminals and JSON consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/solver"
)

// Output formats.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

var pangramStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

// Options controls rendering.
type Options struct {
	Format    string
	Links     bool
	LookupURL string
	Color     bool
}

// Entry is one solution as presented to users.
type Entry struct {
	Word    string `json:"word"`
	Score   int    `json:"score"`
	Pangram bool   `json:"pangram"`
	Link    string `json:"link,omitempty"`
}

// Result is a solved puzzle as presented to users.
type Result struct {
	Letters   string  `json:"letters"`
	Center    string  `json:"center"`
	Count     int     `json:"count"`
	Total     int     `json:"total"`
	Solutions []Entry `json:"solutions"`
}

// NewResult lower-cases each word for display and, when lookupURL is not
// empty, attaches a dictionary link.
func NewResult(p model.Puzzle, solutions []model.Solution, lookupURL string) Result {
	res := Result{
		Letters:   p.Letters,
		Center:    string(p.Center),
		Count:     len(solutions),
		Solutions: make([]Entry, 0, len(solutions)),
	}
	for _, s := range solutions {
		entry := Entry{Word: solver.Lower(s.Word), Score: s.Score, Pangram: s.Pangram}
		if lookupURL != "" {
			entry.Link = LookupURL(lookupURL, s.Word)
		}
		res.Total += s.Score
		res.Solutions = append(res.Solutions, entry)
	}
	return res
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatPlain, FormatJSON:
		return true
	}
	return false
}

// CountLine returns the "N words found" heading.
func CountLine(n int) string {
	noun := "words"
	if n == 1 {
		noun = "word"
	}
	return fmt.Sprintf("%s %s found", humanize.Comma(int64(n)), noun)
}

// Render writes the result in the requested format.
func Render(w io.Writer, p model.Puzzle, solutions []model.Solution, opts Options) error {
	lookup := ""
	if opts.Links {
		lookup = opts.LookupURL
		if lookup == "" {
			lookup = DefaultLookupURL
		}
	}
	res := NewResult(p, solutions, lookup)
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatPlain:
		for _, e := range res.Solutions {
			if _, err := fmt.Fprintln(w, e.Word); err != nil {
				return err
			}
		}
		return nil
	case FormatTable, "":
		return renderTable(w, res, opts.Color)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func renderTable(w io.Writer, res Result, color bool) error {
	if _, err := fmt.Fprintln(w, CountLine(res.Count)); err != nil {
		return err
	}
	if res.Count == 0 {
		return nil
	}
	wordWidth := runewidth.StringWidth("total")
	scoreWidth := len(strconv.Itoa(res.Total))
	for _, e := range res.Solutions {
		wordWidth = max(wordWidth, runewidth.StringWidth(e.Word))
		scoreWidth = max(scoreWidth, len(strconv.Itoa(e.Score)))
	}
	for _, e := range res.Solutions {
		word := runewidth.FillRight(e.Word, wordWidth)
		marker := " "
		if e.Pangram {
			marker = "*"
			if color {
				word = pangramStyle.Render(word)
			}
		}
		line := fmt.Sprintf("%s  %*d%s", word, scoreWidth, e.Score, marker)
		if e.Link != "" {
			line += "  " + e.Link
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s  %*d\n", runewidth.FillRight("total", wordWidth), scoreWidth, res.Total)
	return err
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
