package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != "localhost:8937" {
		t.Errorf("unexpected default listen addr: %s", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected default log level: %s", cfg.LogLevel)
	}
	if cfg.RootDir != "" {
		t.Errorf("default root dir should be empty (process working directory), got %s", cfg.RootDir)
	}
	if cfg.AuditDBPath != "" {
		t.Errorf("audit journal should be disabled by default, got path %s", cfg.AuditDBPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load on missing file should return defaults, got error: %v", err)
	}
	if cfg.ListenAddr != "localhost:8937" {
		t.Errorf("expected default config, got listen addr %s", cfg.ListenAddr)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"root_dir": "/srv/data", "log_level": "debug", "max_grep_results": 100}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RootDir != "/srv/data" {
		t.Errorf("expected root_dir override, got %s", cfg.RootDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level override, got %s", cfg.LogLevel)
	}
	if cfg.MaxGrepResults != 100 {
		t.Errorf("expected max_grep_results override, got %d", cfg.MaxGrepResults)
	}
	// Untouched fields keep defaults
	if cfg.ListenAddr != "localhost:8937" {
		t.Errorf("expected default listen addr to survive partial config, got %s", cfg.ListenAddr)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.RootDir = "/tmp/workspace"
	cfg.Sandbox.DisableLandlock = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.RootDir != "/tmp/workspace" {
		t.Errorf("round trip lost root_dir: %s", loaded.RootDir)
	}
	if !loaded.Sandbox.DisableLandlock {
		t.Error("round trip lost sandbox.disable_landlock")
	}
}
