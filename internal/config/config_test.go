package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "." {
		t.Errorf("Expected default scan path ., got %v", cfg.ScanPaths)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected 500ms debounce, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.Catalog != "pystub-catalog.json" {
		t.Errorf("Expected default catalog path, got %q", cfg.Output.Catalog)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Expected default exclude dirs")
	}
}

func TestLoad(t *testing.T) {
	content := `
scan_paths = ["src", "examples"]
default_module = "my_module"

[exclude]
dirs = ["target"]
files = ["build.rs"]

[output]
catalog = "out/catalog.json"
fragments = "out/fragments.txt"

[history]
path = "pystub.db"
`
	path := filepath.Join(t.TempDir(), "pystub.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.ScanPaths) != 2 || cfg.ScanPaths[0] != "src" {
		t.Errorf("Expected configured scan paths, got %v", cfg.ScanPaths)
	}
	if cfg.DefaultModule != "my_module" {
		t.Errorf("Expected default module my_module, got %q", cfg.DefaultModule)
	}
	if cfg.Output.Fragments != "out/fragments.txt" {
		t.Errorf("Expected fragments path, got %q", cfg.Output.Fragments)
	}
	if cfg.History.Path != "pystub.db" {
		t.Errorf("Expected history path, got %q", cfg.History.Path)
	}

	// Unset values still get defaults.
	if cfg.Watch.RescansPerSec != 2 {
		t.Errorf("Expected default rescan rate, got %v", cfg.Watch.RescansPerSec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
