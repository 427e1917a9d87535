package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds user-configurable defaults. Flags override all of it.
type Config struct {
	IntervalSec int              `yaml:"interval_sec"`
	TopProcs    int              `yaml:"top_procs"`
	Prometheus  PrometheusConfig `yaml:"prometheus"`
}

// PrometheusConfig gates the optional scrape endpoint.
type PrometheusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec: 1,
		TopProcs:    15,
		Prometheus: PrometheusConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9257",
		},
	}
}

// Path returns ~/.config/ttop/config.yaml (or XDG_CONFIG_HOME).
// Returns empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ttop", "config.yaml")
}

// Load loads config from disk; returns defaults on any error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Warn().Err(err).Str("path", p).Msg("config parse error, using defaults")
		return Default()
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
