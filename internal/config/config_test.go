package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", SettingsFile, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("expected sqlite store, got %q", cfg.Store)
	}
	if cfg.AuthDelay != DefaultAuthDelay {
		t.Errorf("expected default delay, got %v", cfg.AuthDelay)
	}
	if cfg.StorePath() != filepath.Join(dir, "taskflow.db") {
		t.Errorf("unexpected store path %q", cfg.StorePath())
	}
}

func TestLoad_Settings(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "store = \"memory\"\nauth_delay = \"250ms\"\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("expected memory store, got %q", cfg.Store)
	}
	if cfg.AuthDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.AuthDelay)
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	cases := map[string]string{
		"syntax":      "store = ",
		"unknown key": "colour = \"blue\"\n",
		"bad store":   "store = \"redis\"\n",
		"bad delay":   "auth_delay = \"soon\"\n",
		"negative":    "auth_delay = \"-1s\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeSettings(t, dir, content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "invalid config.toml") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "taskflow") {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output without --debug: %q", buf.String())
	}

	NewLogger(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestLog_NilDiscards(t *testing.T) {
	cfg := &Config{}
	cfg.Log().Error("dropped")
}
