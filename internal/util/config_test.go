package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	// run from a directory without a glogo.toml
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("a missing default file should not be an error, got %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 200 {
		t.Errorf("expected 200x200 defaults, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Output != "output.svg" {
		t.Errorf("expected default output 'output.svg', got %q", cfg.Output)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected default log level 'error', got %q", cfg.LogLevel)
	}
}

func TestLoadConfigurationExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	contents := `width = 640
height = 480
output = "drawing.png"
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Output != "drawing.png" {
		t.Errorf("expected output 'drawing.png', got %q", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.LogLevel)
	}
}

func TestLoadConfigurationPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte("width = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 300 {
		t.Errorf("expected width 300, got %d", cfg.Width)
	}
	if cfg.Height != 200 {
		t.Errorf("expected unset height to keep its default, got %d", cfg.Height)
	}
}

func TestLoadConfigurationMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing explicit file")
	}
}
