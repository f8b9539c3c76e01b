// Package tui provides the Bubble Tea solver interface.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/beesolve/internal/generator"
	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/report"
	"github.com/verte-zerg/beesolve/internal/solver"
	"github.com/verte-zerg/beesolve/internal/stats"
)

const (
	inputLetters = iota
	inputCenter
)

const minRandomWords = 20

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pangramStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	formStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea solver UI.
type Model struct {
	words []string
	gen   *generator.Generator

	inputs     []textinput.Model
	focusIndex int
	errMsg     string

	showResults bool
	puzzle      model.Puzzle
	solutions   []model.Solution
	results     viewport.Model

	width  int
	height int
}

// NewModel constructs a solver UI over a prepared dictionary.
func NewModel(words []string, gen *generator.Generator) *Model {
	m := &Model{
		words:   words,
		gen:     gen,
		results: viewport.New(0, 0),
	}
	m.inputs = []textinput.Model{
		newInput("Letters: ", "7 letters", 0),
		newInput("Center:  ", "one of the letters", 1),
	}
	m.setFocus(inputLetters)
	return m
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 24
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyCtrlR {
			m.randomPuzzle()
			return m, nil
		}
		if m.showResults {
			return m.updateResults(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.showResults = false
		return m, m.setFocus(inputLetters)
	case "g", "home":
		m.results.GotoTop()
		return m, nil
	case "G", "end":
		m.results.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.normalizeInput(m.focusIndex)
		return m, m.setFocus(m.focusIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		m.normalizeInput(m.focusIndex)
		return m, m.setFocus(m.focusIndex - 1)
	case tea.KeyEnter:
		m.normalizeInput(m.focusIndex)
		if m.focusIndex == inputLetters {
			m.errMsg = validateLetters(m.inputs[inputLetters].Value())
			return m, m.setFocus(inputCenter)
		}
		m.submit()
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(idx int) tea.Cmd {
	count := len(m.inputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.focusIndex = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == idx {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) normalizeInput(idx int) {
	value := solver.Normalize(m.inputs[idx].Value())
	m.inputs[idx].SetValue(value)
	m.inputs[idx].CursorEnd()
}

func validateLetters(letters string) string {
	if len(letters) != solver.PuzzleSize {
		return "Enter 7 letters"
	}
	return ""
}

func (m *Model) submit() {
	p, err := solver.NewPuzzle(m.inputs[inputLetters].Value(), m.inputs[inputCenter].Value())
	if err != nil {
		m.errMsg = solver.FormMessage(err)
		return
	}
	m.showPuzzle(p)
}

func (m *Model) randomPuzzle() {
	if m.gen == nil {
		return
	}
	p, err := m.gen.Generate(m.words, minRandomWords)
	if errors.Is(err, generator.ErrNoPuzzle) {
		p, err = m.gen.Generate(m.words, 1)
	}
	if err != nil {
		m.showResults = false
		m.errMsg = err.Error()
		return
	}
	m.inputs[inputLetters].SetValue(p.Letters)
	m.inputs[inputCenter].SetValue(string(p.Center))
	m.showPuzzle(p)
}

func (m *Model) showPuzzle(p model.Puzzle) {
	m.errMsg = ""
	m.puzzle = p
	m.solutions = solver.Solve(p, m.words)
	m.showResults = true
	m.updateLayout()
	m.results.GotoTop()
}

func (m *Model) updateLayout() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.results.Width = width
	m.results.Height = max(1, m.height-4)
	m.results.SetContent(renderSolutions(m.solutions, width))
}

func renderSolutions(solutions []model.Solution, width int) string {
	if len(solutions) == 0 {
		return helpStyle.Render("No words match these letters.")
	}
	cells := make([]cell, 0, len(solutions))
	for _, s := range solutions {
		word := solver.Lower(s.Word)
		score := fmt.Sprintf("%d", s.Score)
		style := wordStyle
		if s.Pangram {
			style = pangramStyle
		}
		cells = append(cells, cell{
			s:     style.Render(word) + " " + scoreStyle.Render(score),
			width: runewidth.StringWidth(word) + 1 + len(score),
		})
	}
	return layoutColumns(cells, width)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showResults {
		return m.viewResults()
	}
	return m.viewForm()
}

func (m *Model) viewForm() string {
	lines := []string{titleStyle.Render("Spelling Bee Solver"), ""}
	for _, input := range m.inputs {
		lines = append(lines, labelStyle.Render(input.View()))
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", helpStyle.Render("enter: next/solve  tab: switch field  ctrl+r: random  esc: quit"))
	form := formStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return form
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

func (m *Model) viewResults() string {
	sum := stats.Summarize(m.solutions)
	header := fmt.Sprintf("%s  center %s  %s  %d points  %d pangrams",
		titleStyle.Render(m.puzzle.Letters),
		titleStyle.Render(string(m.puzzle.Center)),
		report.CountLine(sum.Words),
		sum.Total,
		sum.Pangrams,
	)
	footer := helpStyle.Render("scroll: up/down/pgup/pgdn  esc: new puzzle  ctrl+r: random  q: quit")
	return strings.Join([]string{header, "", m.results.View(), "", footer}, "\n")
}
