package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.StoreKey != "tudu-tasks" {
		t.Fatalf("unexpected store key: %q", cfg.StoreKey)
	}
	if cfg.DefaultFilter != "all" {
		t.Fatalf("unexpected default filter: %q", cfg.DefaultFilter)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected non-empty db path")
	}
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	base := Default()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), base)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg != base {
		t.Fatalf("expected base config back, got %+v", cfg)
	}
}

func TestLoadFileOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "db_path: /tmp/custom.db\ndefault_filter: pending\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("expected db path override, got %q", cfg.DBPath)
	}
	if cfg.DefaultFilter != "pending" {
		t.Fatalf("expected filter override, got %q", cfg.DefaultFilter)
	}
	if cfg.StoreKey != "tudu-tasks" {
		t.Fatalf("expected store key backfilled, got %q", cfg.StoreKey)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path, Default()); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TUDU_DB_PATH", "/tmp/env.db")
	t.Setenv("TUDU_STORE_KEY", "alt-key")
	t.Setenv("TUDU_DEFAULT_FILTER", "completed")
	t.Setenv("TUDU_DESKTOP_NOTIFICATIONS", "yes")

	cfg := FromEnv(Default())
	if cfg.DBPath != "/tmp/env.db" || cfg.StoreKey != "alt-key" || cfg.DefaultFilter != "completed" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications enabled")
	}
}
