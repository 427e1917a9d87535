package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Load()
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.IntervalSec != 1 || cfg.TopProcs != 15 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Prometheus.Enabled {
		t.Error("exporter must default to off")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Config{
		IntervalSec: 5,
		TopProcs:    10,
		Prometheus:  PrometheusConfig{Enabled: true, Addr: "127.0.0.1:9999"},
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "ttop", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("interval_sec: [not a number"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := Load(); got != Default() {
		t.Errorf("broken config should fall back to defaults, got %+v", got)
	}
}
