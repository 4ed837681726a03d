package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.PageSize != 20 {
		t.Errorf("PageSize: got %d, want 20", cfg.PageSize)
	}
	if cfg.DownloadDir == "" || cfg.LogFile == "" {
		t.Error("expected default download dir and log file paths")
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_url: https://api.copay.africa\npage_size: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://api.copay.africa" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize: got %d, want 50", cfg.PageSize)
	}
	// Unset keys still fall back to defaults.
	if cfg.DownloadDir == "" {
		t.Error("DownloadDir: got empty, want default")
	}
}
