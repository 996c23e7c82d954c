package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/userfile/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Without an explicit path, a missing config file falls back to defaults.
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Store.Backend != config.BackendJSONFile {
		t.Fatalf("expected default backend json, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Path != "users.json" {
		t.Fatalf("expected default path users.json, got %q", cfg.Store.Path)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userfile.yaml")
	content := []byte("server:\n  port: 8080\nstore:\n  backend: sqlite\n  path: users.db\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Store.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Path != "users.db" {
		t.Fatalf("expected path users.db, got %q", cfg.Store.Path)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userfile.yaml")
	if err := os.WriteFile(path, []byte("store:\n  backend: redis\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
