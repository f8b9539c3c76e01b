package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/beesolve/internal/config"
	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/report"
	"github.com/verte-zerg/beesolve/internal/solver"
)

const testDict = "cartels\nrattles\nteas\ncrate\nseal\ncat\n"

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("NO_COLOR", "1")
	dictPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(dictPath, []byte(testDict), 0o644); err != nil {
		t.Fatalf("write dict: %v", err)
	}
	return dictPath
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "beesolve", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestSolveCommandTable(t *testing.T) {
	dict := setupEnv(t)

	got, err := execute(t, "solve", "tracles", "t", "--dict", dict)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := "4 words found\n" +
		"cartels  11*\n" +
		"rattles   4\n" +
		"crate     2\n" +
		"teas      1\n" +
		"total    18\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestSolveCommandFlagsForPuzzle(t *testing.T) {
	dict := setupEnv(t)

	got, err := execute(t, "solve", "--letters", "ACELRST", "--center", "s", "--dict", dict, "--format", "plain")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got != "cartels\nrattles\nseal\nteas\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestSolveCommandUsesConfigFile(t *testing.T) {
	dict := setupEnv(t)
	writeConfig(t, "[solve]\ndict = \""+filepath.ToSlash(dict)+"\"\nformat = \"plain\"\n")

	got, err := execute(t, "solve", "tracles", "t")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got != "cartels\nrattles\ncrate\nteas\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestSolveCommandFlagOverridesConfig(t *testing.T) {
	dict := setupEnv(t)
	writeConfig(t, "[solve]\nformat = \"plain\"\nmin-length = 5\n")

	got, err := execute(t, "solve", "tracles", "t", "--dict", dict, "--format", "json", "--links")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	var res report.Result
	if err := json.Unmarshal([]byte(got), &res); err != nil {
		t.Fatalf("decode json: %v\n%s", err, got)
	}
	if res.Count != 3 {
		t.Fatalf("count = %d, want 3 with min-length 5", res.Count)
	}
	if res.Solutions[0].Link != report.DefaultLookupURL+"cartels" {
		t.Fatalf("link = %q", res.Solutions[0].Link)
	}
}

func TestSolveCommandHints(t *testing.T) {
	dict := setupEnv(t)

	got, err := execute(t, "solve", "tracles", "t", "--dict", dict, "--hints")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !strings.Contains(got, "Words: 4  Pangrams: 1 (perfect 1)  Points: 18") {
		t.Fatalf("missing summary:\n%s", got)
	}
	if !strings.Contains(got, "Two letters:") {
		t.Fatalf("missing two-letter list:\n%s", got)
	}
}

func TestSolveCommandHintsFromConfig(t *testing.T) {
	dict := setupEnv(t)
	writeConfig(t, "[solve]\nhints = true\n")

	got, err := execute(t, "solve", "tracles", "t", "--dict", dict)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !strings.Contains(got, "Two letters:") {
		t.Fatalf("expected hints from config:\n%s", got)
	}

	got, err = execute(t, "solve", "tracles", "t", "--dict", dict, "--hints=false")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if strings.Contains(got, "Two letters:") {
		t.Fatalf("expected --hints=false to override config:\n%s", got)
	}
}

func TestSolveCommandRejectsBadPuzzle(t *testing.T) {
	dict := setupEnv(t)

	_, err := execute(t, "solve", "abc", "a", "--dict", dict)
	if !errors.Is(err, solver.ErrLetterCount) {
		t.Fatalf("err = %v, want ErrLetterCount", err)
	}
	_, err = execute(t, "solve", "tracles", "q", "--dict", dict)
	if !errors.Is(err, solver.ErrInvalidCenter) {
		t.Fatalf("err = %v, want ErrInvalidCenter", err)
	}
}

func TestSolveCommandMissingDictionary(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "solve", "tracles", "t")
	if err == nil || !strings.Contains(err.Error(), "Download: beesolve wordlist") {
		t.Fatalf("err = %v, want download hint", err)
	}
}

func TestImportSolveAndSources(t *testing.T) {
	dict := setupEnv(t)
	db := filepath.Join(t.TempDir(), "words.db")

	got, err := execute(t, "import", dict, "--db", db, "--name", "test")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasPrefix(got, "Imported 5 words into ") {
		t.Fatalf("import output = %q", got)
	}

	got, err = execute(t, "solve", "tracles", "t", "--dict", db+"#test", "--format", "plain")
	if err != nil {
		t.Fatalf("solve from store: %v", err)
	}
	if got != "cartels\nrattles\ncrate\nteas\n" {
		t.Fatalf("store output = %q", got)
	}

	got, err = execute(t, "sources", "--db", db)
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	if got != "test\t5\n" {
		t.Fatalf("sources output = %q", got)
	}
}

func TestSourcesWithoutStore(t *testing.T) {
	setupEnv(t)

	if _, err := execute(t, "sources"); err == nil {
		t.Fatalf("expected error without a word store")
	}
}

func TestRandomCommand(t *testing.T) {
	dict := setupEnv(t)

	got, err := execute(t, "random", "--dict", dict, "--seed", "7", "--min-words", "1", "--reveal")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if !strings.HasPrefix(got, "Letters: ACELRST  Center: ") {
		t.Fatalf("output = %q", got)
	}
	if !strings.Contains(got, "cartels") {
		t.Fatalf("expected revealed pangram:\n%s", got)
	}
}

func TestPuzzleArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		letters string
		center  string
		want    [2]string
		wantErr bool
	}{
		{name: "args", args: []string{"tracles", "t"}, want: [2]string{"tracles", "t"}},
		{name: "flags", letters: "tracles", center: "t", want: [2]string{"tracles", "t"}},
		{name: "both", args: []string{"tracles", "t"}, letters: "x", wantErr: true},
		{name: "one arg", args: []string{"tracles"}, wantErr: true},
		{name: "missing center", letters: "tracles", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letters, center, err := puzzleArgs(tt.args, tt.letters, tt.center)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if letters != tt.want[0] || center != tt.want[1] {
				t.Fatalf("got %q %q, want %q", letters, center, tt.want)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	ok := model.Config{Format: report.FormatTable, MinLength: 4}
	if err := validateConfig(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []model.Config{
		{Format: "xml"},
		{Format: report.FormatTable, MinLength: -1},
		{Format: report.FormatTable, Links: true},
	}
	for _, cfg := range bad {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestWriteWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "words.txt")
	if err := writeWordList(path, []string{"cartels", "teas"}); err != nil {
		t.Fatalf("writeWordList: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "cartels\nteas\n" {
		t.Fatalf("content = %q", data)
	}
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "wordlist-*.txt"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	setupEnv(t)
	lines := strings.Split(defaultConfigTemplate(), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			lines[i] = strings.TrimPrefix(line, "# ")
		}
	}
	writeConfig(t, strings.Join(lines, "\n"))

	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if cfg.Solve.Format == nil || *cfg.Solve.Format != report.FormatTable {
		t.Fatalf("format = %v, want table", cfg.Solve.Format)
	}
	if cfg.Serve.Addr == nil || *cfg.Serve.Addr != defaultAddr {
		t.Fatalf("addr = %v, want %q", cfg.Serve.Addr, defaultAddr)
	}
}

func TestLoadDictionaryKeepsRepeatedWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("seat\nSEAT\nseat\nteas\n"), 0o644); err != nil {
		t.Fatalf("write dict: %v", err)
	}
	words, err := loadDictionary(context.Background(), path, 4)
	if err != nil {
		t.Fatalf("loadDictionary: %v", err)
	}
	p, err := solver.NewPuzzle("ACELRST", "T")
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	got := solver.Solve(p, words)
	if len(got) != 4 {
		t.Fatalf("ranked %d words, want 4: %+v", len(got), got)
	}
	for i, want := range []string{"SEAT", "SEAT", "SEAT", "TEAS"} {
		if got[i].Word != want {
			t.Fatalf("word %d = %q, want %q", i, got[i].Word, want)
		}
	}
}
