package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"media-clipper/internal/logging"
	"media-clipper/internal/workers"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is probed when CONFIG_FILE is not set.
const defaultConfigFile = "media-clipper.toml"

// validModes guards default_mode against typos. The request package owns
// the authoritative enum; the two lists must stay in sync.
var validModes = map[string]bool{
	"fast":       true,
	"balanced":   true,
	"precise":    true,
	"audio_only": true,
}

// Config holds all service configuration after merging defaults, the
// optional TOML file, and environment variables (in that precedence).
type Config struct {
	Port           string
	MetricsPort    string
	MetricsEnabled bool

	RequireAPIHeaders bool
	LogHealthChecks   bool

	ScratchDir    string
	WorkspaceTTL  time.Duration
	SweepInterval time.Duration

	ResolveTimeout   time.Duration
	FetchTimeout     time.Duration
	TranscodeTimeout time.Duration
	SidecarTimeout   time.Duration

	// Policy limits, in whole seconds to match clip bounds.
	MaxVideoDuration  int
	MaxClipDuration   int
	MinClipDuration   int
	DurationTolerance int

	DefaultMode    string
	AllowedDomains []string

	YtDlpPath  string
	FFmpegPath string

	// MaxConcurrentJobs bounds simultaneous pipeline executions. The
	// default derives from available CPUs; see workers.ForMixed.
	MaxConcurrentJobs int
	ThumbnailMaxWidth int

	LogLevel string
}

// fileConfig mirrors Config with optional fields so the TOML file can
// override any default, including to zero values. Durations are strings
// in Go duration syntax.
type fileConfig struct {
	Port              *string  `toml:"port"`
	MetricsPort       *string  `toml:"metrics_port"`
	MetricsEnabled    *bool    `toml:"metrics_enabled"`
	RequireAPIHeaders *bool    `toml:"require_api_headers"`
	LogHealthChecks   *bool    `toml:"log_health_checks"`
	ScratchDir        *string  `toml:"scratch_dir"`
	WorkspaceTTL      *string  `toml:"workspace_ttl"`
	SweepInterval     *string  `toml:"sweep_interval"`
	ResolveTimeout    *string  `toml:"resolve_timeout"`
	FetchTimeout      *string  `toml:"fetch_timeout"`
	TranscodeTimeout  *string  `toml:"transcode_timeout"`
	SidecarTimeout    *string  `toml:"sidecar_timeout"`
	MaxVideoDuration  *int     `toml:"max_video_duration"`
	MaxClipDuration   *int     `toml:"max_clip_duration"`
	MinClipDuration   *int     `toml:"min_clip_duration"`
	DurationTolerance *int     `toml:"duration_tolerance"`
	DefaultMode       *string  `toml:"default_mode"`
	AllowedDomains    []string `toml:"allowed_domains"`
	YtDlpPath         *string  `toml:"ytdlp_path"`
	FFmpegPath        *string  `toml:"ffmpeg_path"`
	MaxConcurrentJobs *int     `toml:"max_concurrent_jobs"`
	ThumbnailMaxWidth *int     `toml:"thumbnail_max_width"`
	LogLevel          *string  `toml:"log_level"`
}

// Default returns the shipped defaults.
func Default() *Config {
	return &Config{
		Port:              "8080",
		MetricsPort:       "9090",
		MetricsEnabled:    true,
		RequireAPIHeaders: true,
		LogHealthChecks:   true,
		ScratchDir:        filepath.Join(os.TempDir(), "media-clipper"),
		WorkspaceTTL:      time.Hour,
		SweepInterval:     5 * time.Minute,
		ResolveTimeout:    60 * time.Second,
		FetchTimeout:      10 * time.Minute,
		TranscodeTimeout:  5 * time.Minute,
		SidecarTimeout:    90 * time.Second,
		MaxVideoDuration:  14400,
		MaxClipDuration:   1800,
		MinClipDuration:   1,
		DurationTolerance: 2,
		DefaultMode:       "balanced",
		AllowedDomains: []string{
			"youtube.com",
			"www.youtube.com",
			"m.youtube.com",
			"music.youtube.com",
			"youtu.be",
		},
		YtDlpPath:         "yt-dlp",
		FFmpegPath:        "ffmpeg",
		MaxConcurrentJobs: workers.ForMixed(8),
		ThumbnailMaxWidth: 1280,
		LogLevel:          "info",
	}
}

// Load merges defaults, the optional TOML file, and environment
// variables, validates the result, and applies the log level.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		logging.Debug("Config: loaded %s", path)
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// applyFile overlays values from a TOML file. Unlike environment
// overrides, a malformed file value is an error: the file is explicit
// operator input, not ambient state.
func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setDuration := func(dst *time.Duration, src *string, key string) error {
		if src == nil {
			return nil
		}
		d, err := time.ParseDuration(*src)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString(&c.Port, fc.Port)
	setString(&c.MetricsPort, fc.MetricsPort)
	setBool(&c.MetricsEnabled, fc.MetricsEnabled)
	setBool(&c.RequireAPIHeaders, fc.RequireAPIHeaders)
	setBool(&c.LogHealthChecks, fc.LogHealthChecks)
	setString(&c.ScratchDir, fc.ScratchDir)
	setInt(&c.MaxVideoDuration, fc.MaxVideoDuration)
	setInt(&c.MaxClipDuration, fc.MaxClipDuration)
	setInt(&c.MinClipDuration, fc.MinClipDuration)
	setInt(&c.DurationTolerance, fc.DurationTolerance)
	setString(&c.DefaultMode, fc.DefaultMode)
	setString(&c.YtDlpPath, fc.YtDlpPath)
	setString(&c.FFmpegPath, fc.FFmpegPath)
	setInt(&c.MaxConcurrentJobs, fc.MaxConcurrentJobs)
	setInt(&c.ThumbnailMaxWidth, fc.ThumbnailMaxWidth)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.AllowedDomains != nil {
		c.AllowedDomains = fc.AllowedDomains
	}

	for _, d := range []struct {
		dst *time.Duration
		src *string
		key string
	}{
		{&c.WorkspaceTTL, fc.WorkspaceTTL, "workspace_ttl"},
		{&c.SweepInterval, fc.SweepInterval, "sweep_interval"},
		{&c.ResolveTimeout, fc.ResolveTimeout, "resolve_timeout"},
		{&c.FetchTimeout, fc.FetchTimeout, "fetch_timeout"},
		{&c.TranscodeTimeout, fc.TranscodeTimeout, "transcode_timeout"},
		{&c.SidecarTimeout, fc.SidecarTimeout, "sidecar_timeout"},
	} {
		if err := setDuration(d.dst, d.src, d.key); err != nil {
			return err
		}
	}

	return nil
}

// applyEnv overlays environment variables. Invalid values warn and keep
// the previous setting.
func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.MetricsPort = getEnv("METRICS_PORT", c.MetricsPort)
	c.MetricsEnabled = getEnvBool("METRICS_ENABLED", c.MetricsEnabled)
	c.RequireAPIHeaders = getEnvBool("REQUIRE_API_HEADERS", c.RequireAPIHeaders)
	c.LogHealthChecks = getEnvBool("LOG_HEALTH_CHECKS", c.LogHealthChecks)
	c.ScratchDir = getEnv("SCRATCH_DIR", c.ScratchDir)
	c.WorkspaceTTL = getEnvDuration("WORKSPACE_TTL", c.WorkspaceTTL)
	c.SweepInterval = getEnvDuration("SWEEP_INTERVAL", c.SweepInterval)
	c.ResolveTimeout = getEnvDuration("RESOLVE_TIMEOUT", c.ResolveTimeout)
	c.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", c.FetchTimeout)
	c.TranscodeTimeout = getEnvDuration("TRANSCODE_TIMEOUT", c.TranscodeTimeout)
	c.SidecarTimeout = getEnvDuration("SIDECAR_TIMEOUT", c.SidecarTimeout)
	c.MaxVideoDuration = getEnvInt("MAX_VIDEO_DURATION", c.MaxVideoDuration)
	c.MaxClipDuration = getEnvInt("MAX_CLIP_DURATION", c.MaxClipDuration)
	c.MinClipDuration = getEnvInt("MIN_CLIP_DURATION", c.MinClipDuration)
	c.DurationTolerance = getEnvInt("DURATION_TOLERANCE", c.DurationTolerance)
	c.DefaultMode = getEnv("DEFAULT_MODE", c.DefaultMode)
	c.YtDlpPath = getEnv("YTDLP_PATH", c.YtDlpPath)
	c.FFmpegPath = getEnv("FFMPEG_PATH", c.FFmpegPath)
	c.MaxConcurrentJobs = getEnvInt("MAX_CONCURRENT_JOBS", c.MaxConcurrentJobs)
	c.ThumbnailMaxWidth = getEnvInt("THUMBNAIL_MAX_WIDTH", c.ThumbnailMaxWidth)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	if domains := os.Getenv("ALLOWED_DOMAINS"); domains != "" {
		var parsed []string
		for _, d := range strings.Split(domains, ",") {
			if d = strings.TrimSpace(d); d != "" {
				parsed = append(parsed, d)
			}
		}
		if len(parsed) > 0 {
			c.AllowedDomains = parsed
		}
	}
}

// Validate checks the merged configuration and normalizes paths.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q is not numeric", c.Port)
	}
	if _, err := strconv.Atoi(c.MetricsPort); err != nil {
		return fmt.Errorf("metrics_port %q is not numeric", c.MetricsPort)
	}

	if c.ScratchDir == "" {
		return fmt.Errorf("scratch_dir must not be empty")
	}
	abs, err := filepath.Abs(c.ScratchDir)
	if err != nil {
		return fmt.Errorf("resolving scratch_dir: %w", err)
	}
	c.ScratchDir = abs

	if c.WorkspaceTTL <= 0 {
		return fmt.Errorf("workspace_ttl must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"resolve_timeout", c.ResolveTimeout},
		{"fetch_timeout", c.FetchTimeout},
		{"transcode_timeout", c.TranscodeTimeout},
		{"sidecar_timeout", c.SidecarTimeout},
	} {
		if d.val <= 0 {
			return fmt.Errorf("%s must be positive", d.name)
		}
	}

	if c.MinClipDuration < 1 {
		return fmt.Errorf("min_clip_duration must be at least 1 second")
	}
	if c.MaxClipDuration < c.MinClipDuration {
		return fmt.Errorf("max_clip_duration (%d) must not be below min_clip_duration (%d)",
			c.MaxClipDuration, c.MinClipDuration)
	}
	if c.MaxVideoDuration < c.MaxClipDuration {
		return fmt.Errorf("max_video_duration (%d) must not be below max_clip_duration (%d)",
			c.MaxVideoDuration, c.MaxClipDuration)
	}
	if c.DurationTolerance < 0 {
		return fmt.Errorf("duration_tolerance must not be negative")
	}

	if !validModes[c.DefaultMode] {
		return fmt.Errorf("default_mode %q is not one of fast, balanced, precise, audio_only", c.DefaultMode)
	}

	if len(c.AllowedDomains) == 0 {
		return fmt.Errorf("allowed_domains must not be empty")
	}
	for i, d := range c.AllowedDomains {
		c.AllowedDomains[i] = strings.ToLower(strings.TrimSpace(d))
	}

	if c.YtDlpPath == "" || c.FFmpegPath == "" {
		return fmt.Errorf("ytdlp_path and ffmpeg_path must not be empty")
	}

	if c.MaxConcurrentJobs < 1 {
		return fmt.Errorf("max_concurrent_jobs must be at least 1")
	}
	if c.ThumbnailMaxWidth < 16 {
		return fmt.Errorf("thumbnail_max_width must be at least 16")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("Invalid duration value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
