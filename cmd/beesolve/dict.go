package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/beesolve/internal/config"
	"github.com/verte-zerg/beesolve/internal/store"
	"github.com/verte-zerg/beesolve/internal/wordfreq"
	"github.com/verte-zerg/beesolve/internal/wordlist"
)

const defaultWordlistSz = 50000

var (
	wordlistSize      int
	wordlistMinLength int
	wordlistSmall     bool
	wordlistForce     bool

	importDB        string
	importName      string
	importMinLength int

	sourcesDB string
)

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Download the default dictionary from wordfreq",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSz, "number of words")
	cmd.Flags().IntVar(&wordlistMinLength, "min-length", wordlist.DefaultMinLength, "minimum word length")
	cmd.Flags().BoolVar(&wordlistSmall, "small", false, "use the small frequency list")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	outPath := config.DefaultWordListPath()
	if !wordlistForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}

	listType := "large"
	if wordlistSmall {
		listType = "small"
	}
	logErrln("Extracting English word list...")
	words, err := wordfreq.ExtractWordlist(wheel.Path, listType, wordlistMinLength, wordlistSize)
	if err != nil {
		return fmt.Errorf("failed to extract word list: %w", err)
	}
	if err := writeWordList(outPath, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logErrf("Wrote %s (%s words)\n", outPath, humanize.Comma(int64(len(words))))

	outDir := filepath.Dir(outPath)
	if err := wordfreq.WriteAttribution(wheel.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logErrln("Wrote ATTRIBUTION.txt and LICENSE.txt")
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import SOURCE",
		Short: "Import a word list file or URL into the word store",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importDB, "db", "", "word store path (default: XDG data dir)")
	cmd.Flags().StringVar(&importName, "name", wordlist.DefaultSource, "source name inside the store")
	cmd.Flags().IntVar(&importMinLength, "min-length", wordlist.DefaultMinLength, "minimum word length (0 disables)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	if importName == "" {
		return fmt.Errorf("--name must not be empty")
	}
	if importMinLength < 0 {
		return fmt.Errorf("--min-length must be >= 0")
	}
	dbPath := importDB
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}

	raw, err := wordlist.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	words := wordlist.Prepare(raw, importMinLength)
	if len(words) == 0 {
		return fmt.Errorf("%s has no usable words", args[0])
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	n, err := st.ReplaceWords(cmd.Context(), importName, words)
	if err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %s words into %s#%s\n", humanize.Comma(int64(n)), dbPath, importName); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List dictionaries imported into the word store",
		Args:  cobra.NoArgs,
		RunE:  runSourcesCmd,
	}
	cmd.Flags().StringVar(&sourcesDB, "db", "", "word store path (default: XDG data dir)")
	return cmd
}

func runSourcesCmd(cmd *cobra.Command, _ []string) error {
	dbPath := sourcesDB
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			logErrf("No word store found. Import one with: beesolve import <file|url>\n")
			return fmt.Errorf("word store does not exist")
		}
		return fmt.Errorf("failed to stat word store: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sources, err := st.Sources(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	if len(sources) == 0 {
		logErrf("No sources imported. Import one with: beesolve import <file|url>\n")
		return fmt.Errorf("no sources found")
	}
	for _, src := range sources {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", src.Source, humanize.Comma(int64(src.Words))); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}
