package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig documents the defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default mission is mission.yaml", func(t *testing.T) {
		t.Parallel()
		if cfg.MissionPath != "mission.yaml" {
			t.Errorf("expected MissionPath to be 'mission.yaml', got '%s'", cfg.MissionPath)
		}
	})

	t.Run("default run is sequential", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 1 {
			t.Errorf("expected Concurrency to be 1, got %d", cfg.Concurrency)
		}
	})

	t.Run("default browser is chrome", func(t *testing.T) {
		t.Parallel()
		if cfg.Browser != BrowserChrome {
			t.Errorf("expected Browser to be chrome, got %q", cfg.Browser)
		}
	})

	t.Run("default navigation timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.NavigationTimeout != 30*time.Second {
			t.Errorf("expected NavigationTimeout to be 30s, got %v", cfg.NavigationTimeout)
		}
	})

	t.Run("default formats are csv and markdown", func(t *testing.T) {
		t.Parallel()
		if !cfg.WantsFormat(FormatCSV) || !cfg.WantsFormat(FormatMarkdown) || cfg.WantsFormat(FormatJSON) {
			t.Errorf("unexpected formats %v", cfg.Formats)
		}
	})

	t.Run("cache directory lives under the XDG cache home", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(cfg.CacheDir) != AppName {
			t.Errorf("expected CacheDir to end with %q, got %q", AppName, cfg.CacheDir)
		}
		if cfg.ArtifactDir() != filepath.Join(cfg.CacheDir, "artifacts") {
			t.Errorf("unexpected ArtifactDir %q", cfg.ArtifactDir())
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "empty mission path", mutate: func(c *Config) { c.MissionPath = "" }, wantErr: ErrNoMission},
		{name: "negative limit", mutate: func(c *Config) { c.Limit = -1 }, wantErr: ErrInvalidLimit},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "zero timeout", mutate: func(c *Config) { c.NavigationTimeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative request rate", mutate: func(c *Config) { c.RequestsPerSecond = -1 }, wantErr: ErrInvalidRequestRate},
		{name: "unknown browser", mutate: func(c *Config) { c.Browser = "firefox" }, wantErr: ErrUnknownBrowser},
		{name: "unknown format", mutate: func(c *Config) { c.Formats = []string{"pdf"} }, wantErr: ErrUnknownFormat},
		{name: "http browser is accepted", mutate: func(c *Config) { c.Browser = BrowserHTTP }},
		{name: "zero request rate disables pacing", mutate: func(c *Config) { c.RequestsPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("unknown format error lists supported formats", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Formats = []string{"pdf"}
		if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "markdown") {
			t.Errorf("unexpected error %v", err)
		}
	})
}
