package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing config to be ignored, got %v", err)
	}
	if cfg.Solve.Dict != nil || cfg.Serve.Addr != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[solve]
dict = "/tmp/words.txt"
min-length = 5
links = true
hints = true

[serve]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Solve.Dict == nil || *cfg.Solve.Dict != "/tmp/words.txt" {
		t.Fatalf("unexpected dict: %v", cfg.Solve.Dict)
	}
	if cfg.Solve.MinLength == nil || *cfg.Solve.MinLength != 5 {
		t.Fatalf("unexpected min-length: %v", cfg.Solve.MinLength)
	}
	if cfg.Solve.Links == nil || !*cfg.Solve.Links {
		t.Fatalf("expected links to be enabled")
	}
	if cfg.Solve.Hints == nil || !*cfg.Solve.Hints {
		t.Fatalf("expected hints to be enabled")
	}
	if cfg.Solve.Format != nil {
		t.Fatalf("expected unset format to stay nil")
	}
	if cfg.Serve.Addr == nil || *cfg.Serve.Addr != ":9000" {
		t.Fatalf("unexpected addr: %v", cfg.Serve.Addr)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[solve]\nletters = \"abc\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "beesolve", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultWordListPath(); got != filepath.Join("/cfg", "beesolve", "words.txt") {
		t.Fatalf("unexpected word list path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "beesolve", "words.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
