// Package main provides the CLI entrypoint for beesolve.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/beesolve/internal/config"
	"github.com/verte-zerg/beesolve/internal/generator"
	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/report"
	"github.com/verte-zerg/beesolve/internal/server"
	"github.com/verte-zerg/beesolve/internal/solver"
	"github.com/verte-zerg/beesolve/internal/stats"
	"github.com/verte-zerg/beesolve/internal/store"
	"github.com/verte-zerg/beesolve/internal/tui"
	"github.com/verte-zerg/beesolve/internal/wordlist"
)

const (
	defaultFormat   = report.FormatTable
	defaultAddr     = ":8080"
	defaultMinWords = 20
	addrEnv         = "BEESOLVE_ADDR"
)

var (
	rootDict      string
	rootMinLength int

	solveLetters   string
	solveCenter    string
	solveDict      string
	solveMinLength int
	solveFormat    string
	solveLinks     bool
	solveLookupURL string
	solveHints     bool

	randomDict      string
	randomMinLength int
	randomMinWords  int
	randomReveal    bool
	randomSeed      int64

	serveAddr      string
	serveDict      string
	serveMinLength int
	serveLookupURL string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "beesolve",
		Short:         "Spelling Bee puzzle solver",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runInteractiveCmd,
	}

	rootCmd.Flags().StringVar(&rootDict, "dict", "", "dictionary: word list file, URL or words.db[#source]")
	rootCmd.Flags().IntVar(&rootMinLength, "min-length", wordlist.DefaultMinLength, "minimum word length (0 disables)")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newRandomCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSourcesCmd())

	return rootCmd
}

func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &rootDict, fileCfg.Solve.Dict)
	applyIntConfig(cmd, "min-length", &rootMinLength, fileCfg.Solve.MinLength)
	if rootMinLength < 0 {
		return fmt.Errorf("--min-length must be >= 0")
	}

	words, err := loadDictionary(cmd.Context(), rootDict, rootMinLength)
	if err != nil {
		return err
	}

	m := tui.NewModel(words, generator.New())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [LETTERS CENTER]",
		Short: "Solve a puzzle",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runSolveCmd,
	}
	cmd.Flags().StringVar(&solveLetters, "letters", "", "the seven puzzle letters")
	cmd.Flags().StringVar(&solveCenter, "center", "", "the center letter")
	cmd.Flags().StringVar(&solveDict, "dict", "", "dictionary: word list file, URL or words.db[#source]")
	cmd.Flags().IntVar(&solveMinLength, "min-length", wordlist.DefaultMinLength, "minimum word length (0 disables)")
	cmd.Flags().StringVar(&solveFormat, "format", defaultFormat, "output format: table, plain or json")
	cmd.Flags().BoolVar(&solveLinks, "links", false, "add dictionary lookup links")
	cmd.Flags().StringVar(&solveLookupURL, "lookup-url", report.DefaultLookupURL, "base URL for lookup links")
	cmd.Flags().BoolVar(&solveHints, "hints", false, "print score ranks and the hints grid")
	return cmd
}

func runSolveCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &solveDict, fileCfg.Solve.Dict)
	applyIntConfig(cmd, "min-length", &solveMinLength, fileCfg.Solve.MinLength)
	applyStringConfig(cmd, "format", &solveFormat, fileCfg.Solve.Format)
	applyBoolConfig(cmd, "links", &solveLinks, fileCfg.Solve.Links)
	applyStringConfig(cmd, "lookup-url", &solveLookupURL, fileCfg.Solve.LookupURL)
	applyBoolConfig(cmd, "hints", &solveHints, fileCfg.Solve.Hints)

	letters, center, err := puzzleArgs(args, solveLetters, solveCenter)
	if err != nil {
		return err
	}

	cfg := model.Config{
		Dict:      solveDict,
		MinLength: solveMinLength,
		Format:    solveFormat,
		Links:     solveLinks,
		LookupURL: solveLookupURL,
		Hints:     solveHints,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	p, err := solver.NewPuzzle(letters, center)
	if err != nil {
		return err
	}
	words, err := puzzleCandidates(cmd.Context(), cfg.Dict, cfg.MinLength, p)
	if err != nil {
		return err
	}
	solutions := solver.Solve(p, words)
	return writeSolutions(cmd.OutOrStdout(), p, solutions, cfg)
}

func puzzleArgs(args []string, letters, center string) (string, string, error) {
	switch len(args) {
	case 0:
	case 2:
		if letters != "" || center != "" {
			return "", "", fmt.Errorf("pass the puzzle as arguments or flags, not both")
		}
		letters, center = args[0], args[1]
	default:
		return "", "", fmt.Errorf("expected LETTERS and CENTER arguments")
	}
	if letters == "" || center == "" {
		return "", "", fmt.Errorf("letters and center are required")
	}
	return letters, center, nil
}

func writeSolutions(w io.Writer, p model.Puzzle, solutions []model.Solution, cfg model.Config) error {
	opts := report.Options{
		Format:    cfg.Format,
		Links:     cfg.Links,
		LookupURL: cfg.LookupURL,
		Color:     report.ShouldUseColor(w),
	}
	if err := report.Render(w, p, solutions, opts); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if !cfg.Hints || cfg.Format == report.FormatJSON {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSummary(w, stats.Summarize(solutions)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHints(w, p.Letters, solutions); err != nil {
		return fmt.Errorf("failed to write hints: %w", err)
	}
	return nil
}

func newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random puzzle from the dictionary",
		Args:  cobra.NoArgs,
		RunE:  runRandomCmd,
	}
	cmd.Flags().StringVar(&randomDict, "dict", "", "dictionary: word list file, URL or words.db[#source]")
	cmd.Flags().IntVar(&randomMinLength, "min-length", wordlist.DefaultMinLength, "minimum word length (0 disables)")
	cmd.Flags().IntVar(&randomMinWords, "min-words", defaultMinWords, "minimum number of solutions")
	cmd.Flags().BoolVar(&randomReveal, "reveal", false, "print the solutions")
	cmd.Flags().Int64Var(&randomSeed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func runRandomCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &randomDict, fileCfg.Solve.Dict)
	applyIntConfig(cmd, "min-length", &randomMinLength, fileCfg.Solve.MinLength)
	if randomMinLength < 0 {
		return fmt.Errorf("--min-length must be >= 0")
	}
	if randomMinWords < 0 {
		return fmt.Errorf("--min-words must be >= 0")
	}

	words, err := loadDictionary(cmd.Context(), randomDict, randomMinLength)
	if err != nil {
		return err
	}
	gen := generator.New()
	if randomSeed != 0 {
		gen = generator.NewWithSeed(randomSeed)
	}
	p, err := gen.Generate(words, randomMinWords)
	if err != nil {
		return fmt.Errorf("failed to generate puzzle: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Letters: %s  Center: %c\n", p.Letters, p.Center); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !randomReveal {
		return nil
	}
	return writeSolutions(out, p, solver.Solve(p, words), model.Config{Format: report.FormatTable})
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&serveDict, "dict", "", "dictionary: word list file, URL or words.db[#source]")
	cmd.Flags().IntVar(&serveMinLength, "min-length", wordlist.DefaultMinLength, "minimum word length (0 disables)")
	cmd.Flags().StringVar(&serveLookupURL, "lookup-url", report.DefaultLookupURL, "base URL for lookup links")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)
	applyStringConfig(cmd, "dict", &serveDict, fileCfg.Serve.Dict)
	if fileCfg.Serve.Dict == nil {
		applyStringConfig(cmd, "dict", &serveDict, fileCfg.Solve.Dict)
	}
	applyIntConfig(cmd, "min-length", &serveMinLength, fileCfg.Solve.MinLength)
	applyStringConfig(cmd, "lookup-url", &serveLookupURL, fileCfg.Solve.LookupURL)
	if env := strings.TrimSpace(os.Getenv(addrEnv)); env != "" && !cmd.Flags().Changed("addr") {
		serveAddr = env
	}

	cfg := model.ServeConfig{
		Addr:      serveAddr,
		Dict:      serveDict,
		MinLength: serveMinLength,
		LookupURL: serveLookupURL,
	}
	if cfg.Addr == "" {
		return fmt.Errorf("--addr must not be empty")
	}
	if cfg.MinLength < 0 {
		return fmt.Errorf("--min-length must be >= 0")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	words, err := loadDictionary(ctx, cfg.Dict, cfg.MinLength)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(words, cfg.LookupURL)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	if err := srv.Run(ctx, cfg.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// puzzleCandidates narrows a store dictionary with its letter-mask index
// before ranking; other sources are loaded whole.
func puzzleCandidates(ctx context.Context, source string, minLength int, p model.Puzzle) ([]string, error) {
	if source == "" || !wordlist.IsStore(source) {
		return loadDictionary(ctx, source, minLength)
	}
	path, name := wordlist.SplitStoreSource(source)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat word store: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	words, err := st.Candidates(ctx, name, p)
	if err != nil {
		return nil, fmt.Errorf("failed to query word store: %w", err)
	}
	return wordlist.Prepare(words, minLength), nil
}

func loadDictionary(ctx context.Context, source string, minLength int) ([]string, error) {
	if source == "" {
		source = config.DefaultWordListPath()
	}
	raw, err := wordlist.Load(ctx, source)
	if err != nil {
		return nil, wordListLoadError(source, err)
	}
	words := wordlist.Prepare(raw, minLength)
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary %s has no usable words", source)
	}
	return words, nil
}

func wordListLoadError(source string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load dictionary: %v", err),
		fmt.Sprintf("expected dictionary at: %s", source),
		"Download: beesolve wordlist",
		"Or pass: --dict <file|url|words.db#source>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# beesolve configuration
# Uncomment a value to enable it. CLI flags override config values.

[solve]
# dict = %q              # Word list file, http(s) URL or words.db#source
# min-length = %d          # Minimum word length (0 disables)
# format = %q         # Output format: table, plain or json
# links = false           # Add dictionary lookup links
# lookup-url = %q
# hints = false           # Print score ranks and the hints grid

[serve]
# addr = %q           # Listen address (BEESOLVE_ADDR overrides)
# dict = %q              # Defaults to [solve] dict
`,
		config.DefaultWordListPath(),
		wordlist.DefaultMinLength,
		defaultFormat,
		report.DefaultLookupURL,
		defaultAddr,
		config.DefaultWordListPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.MinLength < 0 {
		return fmt.Errorf("--min-length must be >= 0")
	}
	if !report.ValidFormat(cfg.Format) {
		return fmt.Errorf("--format must be one of table, plain, json")
	}
	if cfg.Links && cfg.LookupURL == "" {
		return fmt.Errorf("--lookup-url must not be empty when --links is set")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
