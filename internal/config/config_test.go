package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Load is guarded by sync.Once, so one test exercises the whole load
// path: file values, environment override, and defaults for the rest.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9100
auth:
  pin: "5678"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("BF_AUTH_USER_NAME", "Test Operator")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 (from file)", cfg.Server.Port)
	}
	if cfg.Auth.Pin != "5678" {
		t.Errorf("Auth.Pin = %q, want %q (from file)", cfg.Auth.Pin, "5678")
	}
	if cfg.Auth.UserName != "Test Operator" {
		t.Errorf("Auth.UserName = %q, want env override", cfg.Auth.UserName)
	}

	// untouched keys fall back to defaults
	if cfg.Server.Mode != "debug" {
		t.Errorf("Server.Mode = %q, want default %q", cfg.Server.Mode, "debug")
	}
	if cfg.CORS.Origin != "http://localhost:5173" {
		t.Errorf("CORS.Origin = %q, want default", cfg.CORS.Origin)
	}
	if cfg.Database.Path != "./data/budget.db" {
		t.Errorf("Database.Path = %q, want default", cfg.Database.Path)
	}

	// Get returns the same loaded configuration
	if Get() != cfg {
		t.Error("Get() did not return the loaded config")
	}

	// a second Load is a no-op returning the cached config
	again, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if again != cfg {
		t.Error("second Load() returned a different config")
	}
}
