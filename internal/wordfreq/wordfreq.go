// Package wordfreq builds puzzle dictionaries from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/beesolve/internal/solver"
	"github.com/verte-zerg/beesolve/internal/wordlist"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiURL struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiURL `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	return downloadLatestWheel(ctx, pypiEndpoint, cacheDir)
}

func downloadLatestWheel(ctx context.Context, endpoint, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	version, wheelURL, err := latestWheel(ctx, endpoint)
	if err != nil {
		return Wheel{}, err
	}

	wheel := Wheel{
		Version:  version,
		Filename: wheelURL.Filename,
		Path:     filepath.Join(cacheDir, wheelURL.Filename),
	}
	switch _, err := os.Stat(wheel.Path); {
	case err == nil:
		wheel.Cached = true
		return wheel, nil
	case !errors.Is(err, os.ErrNotExist):
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := fetchToFile(ctx, wheelURL.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

// latestWheel reads the PyPI release metadata and picks a wheel, preferring
// the pure-Python build.
func latestWheel(ctx context.Context, endpoint string) (string, pypiURL, error) {
	body, err := get(ctx, endpoint)
	if err != nil {
		return "", pypiURL{}, err
	}
	defer func() {
		_ = body.Close()
	}()

	var payload pypiResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "", pypiURL{}, fmt.Errorf("failed to decode pypi response: %w", err)
	}
	if payload.Info.Version == "" {
		return "", pypiURL{}, fmt.Errorf("missing version in pypi response")
	}

	var pick pypiURL
	for _, u := range payload.URLs {
		if u.Packagetype != "bdist_wheel" || u.URL == "" || u.Filename == "" {
			continue
		}
		if pick.URL == "" || strings.HasSuffix(u.Filename, "py3-none-any.whl") {
			pick = u
		}
		if strings.HasSuffix(pick.Filename, "py3-none-any.whl") {
			break
		}
	}
	if pick.URL == "" {
		return "", pypiURL{}, fmt.Errorf("no suitable wordfreq wheel found")
	}
	return payload.Info.Version, pick, nil
}

// fetchToFile streams url into a temp file next to dest and renames it into
// place once complete.
func fetchToFile(ctx context.Context, url, dest string) error {
	body, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := io.Copy(tmp, body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := (&http.Client{Timeout: 60 * time.Second}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}

// ExtractWordlist returns up to limit English words from the wheel, most
// frequent first. Words are lower-case, alphabetic, at least minLength long
// and have no more distinct letters than a puzzle holds.
func ExtractWordlist(wheelPath, listType string, minLength, limit int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	dataFile := selectDataFile(reader.File, listType)
	if dataFile == nil {
		return nil, fmt.Errorf("no English %s word list in wheel", listType)
	}
	bins, err := readBins(dataFile)
	if err != nil {
		return nil, err
	}

	admit := wordlist.Admit(minLength)
	seen := make(map[string]struct{})
	words := make([]string, 0, limit)
	for _, bin := range bins {
		for _, word := range bin {
			upper := solver.Upper(word)
			if !admit(upper) || !wordlist.PangramCapable(upper) {
				continue
			}
			if _, ok := seen[upper]; ok {
				continue
			}
			seen[upper] = struct{}{}
			words = append(words, solver.Lower(upper))
			if len(words) >= limit {
				return words, nil
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found in %s", dataFile.Name)
	}
	return words, nil
}

// selectDataFile prefers the requested list type and falls back from large to small.
func selectDataFile(files []*zip.File, listType string) *zip.File {
	byType := make(map[string]*zip.File)
	for _, file := range files {
		name := strings.ToLower(file.Name)
		if !strings.HasPrefix(name, "wordfreq/data/") {
			continue
		}
		base := trimDataSuffix(strings.TrimPrefix(name, "wordfreq/data/"))
		switch base {
		case "large_en":
			byType["large"] = file
		case "small_en":
			byType["small"] = file
		}
	}
	if file, ok := byType[strings.ToLower(listType)]; ok {
		return file
	}
	if listType == "large" {
		return byType["small"]
	}
	return nil
}

func trimDataSuffix(name string) string {
	for _, suffix := range []string{".msgpack.gz", ".msgpack"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return ""
}

// readBins decodes a cBpack file: a header map followed by one list of
// words per centibel bin, most frequent first.
func readBins(file *zip.File) ([][]string, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	var raw []interface{}
	if err := msgpack.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode wordfreq data: %w", err)
	}
	bins := make([][]string, 0, len(raw))
	for i, item := range raw {
		if i == 0 {
			if _, ok := item.(map[string]interface{}); ok {
				continue
			}
		}
		words, ok := toStringSlice(item)
		if !ok {
			return nil, fmt.Errorf("unsupported wordfreq bin %T at %d", item, i)
		}
		bins = append(bins, words)
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return bins, nil
}

func toStringSlice(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// WriteAttribution writes attribution and license files next to a generated word list.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	attrText := strings.Join([]string{
		"Word list generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"Changes were made: upper-folded, filtered to A-Z words usable in a seven-letter puzzle, truncated to the requested size.",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(attrText), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}

	licenseText, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "LICENSE.txt"), licenseText, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	return nil
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}
