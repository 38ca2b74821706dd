package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Runtime.TimerCapacity != nil || cfg.History.DBPath != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[runtime]
timer-capacity = 64

[history]
db = "/tmp/runs.db"
record = false
last = 5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Runtime.TimerCapacity == nil || *cfg.Runtime.TimerCapacity != 64 {
		t.Fatalf("unexpected timer capacity: %v", cfg.Runtime.TimerCapacity)
	}
	if cfg.History.DBPath == nil || *cfg.History.DBPath != "/tmp/runs.db" {
		t.Fatalf("unexpected db path: %v", cfg.History.DBPath)
	}
	if cfg.History.Record == nil || *cfg.History.Record {
		t.Fatalf("expected record = false")
	}
	if cfg.History.Last == nil || *cfg.History.Last != 5 {
		t.Fatalf("unexpected last: %v", cfg.History.Last)
	}
	if cfg.History.Top != nil {
		t.Fatalf("expected top unset")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[runtime]\ntimers = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "runtime.timers") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "sysyrt", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "sysyrt", "history.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
