package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/verte-zerg/beesolve/internal/model"
)

var (
	testPuzzle    = model.Puzzle{Letters: "ACELRST", Center: 'T'}
	testSolutions = []model.Solution{
		{Word: "CARTELS", Pangram: true, Score: 11},
		{Word: "RATTLES", Score: 4},
		{Word: "TEAS", Score: 1},
	}
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testPuzzle, testSolutions, Options{Format: FormatTable}); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"3 words found",
		"cartels  11*",
		"rattles   4",
		"teas      1",
		"total    16",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRenderTableLinks(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testPuzzle, testSolutions[:1], Options{Format: FormatTable, Links: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "https://www.collinsdictionary.com/dictionary/english/cartels") {
		t.Fatalf("expected lookup link in output:\n%s", buf.String())
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testPuzzle, nil, Options{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "0 words found\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testPuzzle, testSolutions, Options{Format: FormatPlain}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "cartels\nrattles\nteas\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: FormatJSON, Links: true, LookupURL: "https://example.test/w/"}
	if err := Render(&buf, testPuzzle, testSolutions, opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	var res Result
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 3 || res.Total != 16 || res.Center != "T" || res.Letters != "ACELRST" {
		t.Fatalf("unexpected result header: %+v", res)
	}
	if res.Solutions[0].Link != "https://example.test/w/cartels" || !res.Solutions[0].Pangram {
		t.Fatalf("unexpected first entry: %+v", res.Solutions[0])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, testPuzzle, testSolutions, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCountLine(t *testing.T) {
	if got := CountLine(1); got != "1 word found" {
		t.Fatalf("unexpected count line %q", got)
	}
	if got := CountLine(12345); got != "12,345 words found" {
		t.Fatalf("unexpected count line %q", got)
	}
}

func TestLookupURLEscapes(t *testing.T) {
	if got := LookupURL("", "CAFÉ AU"); got != DefaultLookupURL+"caf%C3%A9%20au" {
		t.Fatalf("unexpected url %q", got)
	}
}
