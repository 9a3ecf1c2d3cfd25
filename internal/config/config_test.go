package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.WorkspaceTTL != time.Hour {
		t.Errorf("WorkspaceTTL = %v, want 1h", cfg.WorkspaceTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
	if cfg.MaxVideoDuration != 14400 {
		t.Errorf("MaxVideoDuration = %d, want 14400", cfg.MaxVideoDuration)
	}
	if cfg.MaxClipDuration != 1800 {
		t.Errorf("MaxClipDuration = %d, want 1800", cfg.MaxClipDuration)
	}
	if cfg.DefaultMode != "balanced" {
		t.Errorf("DefaultMode = %q, want balanced", cfg.DefaultMode)
	}
	if len(cfg.AllowedDomains) == 0 {
		t.Error("AllowedDomains is empty")
	}
	if cfg.MaxConcurrentJobs < 1 {
		t.Errorf("MaxConcurrentJobs = %d, want at least 1", cfg.MaxConcurrentJobs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipper.toml")
	content := `
port = "9999"
workspace_ttl = "30m"
metrics_enabled = false
default_mode = "fast"
allowed_domains = ["example.com"]
max_clip_duration = 600
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.WorkspaceTTL != 30*time.Minute {
		t.Errorf("WorkspaceTTL = %v, want 30m", cfg.WorkspaceTTL)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, file sets false")
	}
	if cfg.DefaultMode != "fast" {
		t.Errorf("DefaultMode = %q, want fast", cfg.DefaultMode)
	}
	if len(cfg.AllowedDomains) != 1 || cfg.AllowedDomains[0] != "example.com" {
		t.Errorf("AllowedDomains = %v, want [example.com]", cfg.AllowedDomains)
	}
	if cfg.MaxClipDuration != 600 {
		t.Errorf("MaxClipDuration = %d, want 600", cfg.MaxClipDuration)
	}
	// Untouched fields keep their defaults
	if cfg.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want default 9090", cfg.MetricsPort)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipper.toml")
	if err := os.WriteFile(path, []byte(`port = "9999"`), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("SWEEP_INTERVAL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("Port = %q, env should beat file", cfg.Port)
	}
	if cfg.SweepInterval != 90*time.Second {
		t.Errorf("SweepInterval = %v, want 90s", cfg.SweepInterval)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.toml"))

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when CONFIG_FILE points at a missing file")
	}
}

func TestLoadBadFileDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipper.toml")
	if err := os.WriteFile(path, []byte(`fetch_timeout = "tomorrow"`), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject malformed file durations")
	}
	if !strings.Contains(err.Error(), "fetch_timeout") {
		t.Errorf("error should name the offending key, got: %v", err)
	}
}

func TestAllowedDomainsEnvParsing(t *testing.T) {
	t.Setenv("ALLOWED_DOMAINS", " Youtube.com , youtu.be ,, ")

	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	want := []string{"youtube.com", "youtu.be"}
	if len(cfg.AllowedDomains) != len(want) {
		t.Fatalf("AllowedDomains = %v, want %v", cfg.AllowedDomains, want)
	}
	for i := range want {
		if cfg.AllowedDomains[i] != want[i] {
			t.Errorf("AllowedDomains[%d] = %q, want %q", i, cfg.AllowedDomains[i], want[i])
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-numeric port", func(c *Config) { c.Port = "eighty" }},
		{"non-numeric metrics port", func(c *Config) { c.MetricsPort = "x" }},
		{"empty scratch dir", func(c *Config) { c.ScratchDir = "" }},
		{"zero ttl", func(c *Config) { c.WorkspaceTTL = 0 }},
		{"zero sweep interval", func(c *Config) { c.SweepInterval = 0 }},
		{"negative resolve timeout", func(c *Config) { c.ResolveTimeout = -time.Second }},
		{"zero fetch timeout", func(c *Config) { c.FetchTimeout = 0 }},
		{"min clip below 1", func(c *Config) { c.MinClipDuration = 0 }},
		{"max clip below min", func(c *Config) { c.MaxClipDuration = 1; c.MinClipDuration = 10 }},
		{"video ceiling below clip ceiling", func(c *Config) { c.MaxVideoDuration = 100; c.MaxClipDuration = 200 }},
		{"negative tolerance", func(c *Config) { c.DurationTolerance = -1 }},
		{"unknown mode", func(c *Config) { c.DefaultMode = "turbo" }},
		{"no domains", func(c *Config) { c.AllowedDomains = nil }},
		{"empty ytdlp path", func(c *Config) { c.YtDlpPath = "" }},
		{"zero jobs", func(c *Config) { c.MaxConcurrentJobs = 0 }},
		{"tiny thumbnail width", func(c *Config) { c.ThumbnailMaxWidth = 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() accepted invalid config (%s)", tt.name)
			}
		})
	}
}

func TestValidateNormalizesDomains(t *testing.T) {
	cfg := Default()
	cfg.AllowedDomains = []string{" YouTube.COM "}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.AllowedDomains[0] != "youtube.com" {
		t.Errorf("domain not normalized: %q", cfg.AllowedDomains[0])
	}
}

func TestValidateResolvesScratchDir(t *testing.T) {
	cfg := Default()
	cfg.ScratchDir = "relative/scratch"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !filepath.IsAbs(cfg.ScratchDir) {
		t.Errorf("ScratchDir not absolute after Validate: %q", cfg.ScratchDir)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("getEnv missing", func(t *testing.T) {
		if got := getEnv("CLIPPER_TEST_UNSET", "fallback"); got != "fallback" {
			t.Errorf("getEnv = %q, want fallback", got)
		}
	})

	t.Run("getEnvBool invalid keeps default", func(t *testing.T) {
		t.Setenv("CLIPPER_TEST_BOOL", "maybe")
		if got := getEnvBool("CLIPPER_TEST_BOOL", true); got != true {
			t.Error("getEnvBool should keep default on parse failure")
		}
	})

	t.Run("getEnvInt invalid keeps default", func(t *testing.T) {
		t.Setenv("CLIPPER_TEST_INT", "many")
		if got := getEnvInt("CLIPPER_TEST_INT", 42); got != 42 {
			t.Errorf("getEnvInt = %d, want 42", got)
		}
	})

	t.Run("getEnvDuration valid", func(t *testing.T) {
		t.Setenv("CLIPPER_TEST_DUR", "2h45m")
		if got := getEnvDuration("CLIPPER_TEST_DUR", time.Minute); got != 2*time.Hour+45*time.Minute {
			t.Errorf("getEnvDuration = %v, want 2h45m", got)
		}
	})

	t.Run("getEnvDuration invalid keeps default", func(t *testing.T) {
		t.Setenv("CLIPPER_TEST_DUR", "soon")
		if got := getEnvDuration("CLIPPER_TEST_DUR", time.Minute); got != time.Minute {
			t.Errorf("getEnvDuration = %v, want 1m", got)
		}
	})
}
