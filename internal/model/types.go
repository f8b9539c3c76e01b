// Package model defines shared data structures.
package model

// Puzzle is a normalized puzzle definition: the letter set as a sorted string
// of unique runes and the center letter every answer must contain.
type Puzzle struct {
	Letters string
	Center  rune
}

// Solution is a ranked dictionary word.
type Solution struct {
	Word    string `json:"word"`
	Pangram bool   `json:"pangram"`
	Score   int    `json:"score"`
}

// Config defines solve settings.
type Config struct {
	Dict      string
	MinLength int
	Format    string
	Links     bool
	LookupURL string
	Hints     bool
}

// ServeConfig defines HTTP server settings.
type ServeConfig struct {
	Addr      string
	Dict      string
	MinLength int
	LookupURL string
}

// SourceInfo summarizes an imported dictionary source.
type SourceInfo struct {
	Source string
	Words  int
}
