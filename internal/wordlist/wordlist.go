// Package wordlist loads dictionary word lists from files, URLs and the word store.
package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/beesolve/internal/store"
)

// DefaultSource names the store source used when a .db path has no #fragment.
const DefaultSource = "default"

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse reads one word per line, trimming whitespace and skipping blank lines.
func Parse(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Fetch downloads a newline-delimited word list.
func Fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected word list status: %s", resp.Status)
	}
	return Parse(resp.Body)
}

// Load reads raw words from source: an http(s) URL, a SQLite store path
// ending in .db (optionally suffixed with #source), or a plain text file.
func Load(ctx context.Context, source string) ([]string, error) {
	switch {
	case IsURL(source):
		return Fetch(ctx, source)
	case IsStore(source):
		path, name := SplitStoreSource(source)
		return loadStore(ctx, path, name)
	default:
		return LoadWords(source)
	}
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// IsStore reports whether source points at a SQLite word store.
func IsStore(source string) bool {
	path, _ := SplitStoreSource(source)
	return strings.HasSuffix(path, ".db")
}

// SplitStoreSource splits "words.db#name" into the path and source name.
func SplitStoreSource(source string) (string, string) {
	path, name, found := strings.Cut(source, "#")
	if !found || name == "" {
		return path, DefaultSource
	}
	return path, name
}

func loadStore(ctx context.Context, path, name string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat word store: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close for read-only access.
			_ = cerr
		}
	}()
	words, err := st.Words(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word store source %q is empty", name)
	}
	return words, nil
}
