package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingImplicitFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Server.Address != "127.0.0.1:8457" {
		t.Errorf("address = %q, want default", cfg.Server.Address)
	}
	if cfg.Thresholds.TypingYoungMaxMs != 180 {
		t.Errorf("typing threshold = %v, want 180", cfg.Thresholds.TypingYoungMaxMs)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/sessionsense.toml"); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessionsense.toml")
	content := `
[server]
address = "0.0.0.0:9000"

[thresholds]
typing_young_max_ms = 150.0

[logging]
level = "debug"
format = "text"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != "0.0.0.0:9000" {
		t.Errorf("address = %q, want override", cfg.Server.Address)
	}
	if cfg.Thresholds.TypingYoungMaxMs != 150 {
		t.Errorf("typing threshold = %v, want 150", cfg.Thresholds.TypingYoungMaxMs)
	}
	// Values absent from the file keep their defaults.
	if cfg.Thresholds.TypingMidMaxMs != 280 {
		t.Errorf("mid threshold = %v, want default 280", cfg.Thresholds.TypingMidMaxMs)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v, want debug/text", cfg.Logging)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(path, []byte("[server\naddress="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
