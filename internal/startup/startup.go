package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"media-clipper/internal/config"
	"media-clipper/internal/logging"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// PrintBanner prints the startup banner with build information
func PrintBanner() {
	banner := `
------------------------------------------------------------
    __  ___         ___       ________ _
   /  |/  /__  ____/ (_)___ _/ ____/ (_)___  ____  ___  _____
  / /|_/ / _ \/ __  / / __ '/ /   / / / __ \/ __ \/ _ \/ ___/
 / /  / /  __/ /_/ / / /_/ / /___/ / / /_/ / /_/ /  __/ /
/_/  /_/\___/\__,_/_/\__,_/\____/_/_/ .___/ .___/\___/_/
                                   /_/   /_/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

// LogSystemInfo logs runtime and host details
func LogSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

// LogConfiguration logs the merged configuration the service will run with
func LogConfiguration(cfg *config.Config) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  PORT:                 %s", cfg.Port)
	logging.Info("  METRICS_PORT:         %s", cfg.MetricsPort)
	logging.Info("  METRICS_ENABLED:      %v", cfg.MetricsEnabled)
	logging.Info("  REQUIRE_API_HEADERS:  %v", cfg.RequireAPIHeaders)
	logging.Info("  SCRATCH_DIR:          %s", cfg.ScratchDir)
	logging.Info("  WORKSPACE_TTL:        %v", cfg.WorkspaceTTL)
	logging.Info("  SWEEP_INTERVAL:       %v", cfg.SweepInterval)
	logging.Info("  RESOLVE_TIMEOUT:      %v", cfg.ResolveTimeout)
	logging.Info("  FETCH_TIMEOUT:        %v", cfg.FetchTimeout)
	logging.Info("  TRANSCODE_TIMEOUT:    %v", cfg.TranscodeTimeout)
	logging.Info("  SIDECAR_TIMEOUT:      %v", cfg.SidecarTimeout)
	logging.Info("  MAX_VIDEO_DURATION:   %ds", cfg.MaxVideoDuration)
	logging.Info("  MAX_CLIP_DURATION:    %ds", cfg.MaxClipDuration)
	logging.Info("  MIN_CLIP_DURATION:    %ds", cfg.MinClipDuration)
	logging.Info("  DEFAULT_MODE:         %s", cfg.DefaultMode)
	logging.Info("  ALLOWED_DOMAINS:      %s", strings.Join(cfg.AllowedDomains, ", "))
	logging.Info("  YTDLP_PATH:           %s", cfg.YtDlpPath)
	logging.Info("  FFMPEG_PATH:          %s", cfg.FFmpegPath)
	logging.Info("  MAX_CONCURRENT_JOBS:  %d", cfg.MaxConcurrentJobs)
	logging.Info("  LOG_HEALTH_CHECKS:    %v", cfg.LogHealthChecks)
	logging.Info("  LOG_LEVEL:            %s", logging.GetLevel())
}

// InitScratch creates the scratch root and verifies it is writable.
// The service cannot run without it.
func InitScratch(dir string) error {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SCRATCH SETUP")
	logging.Info("------------------------------------------------------------")

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve scratch directory path: %w", err)
	}
	logging.Info("  Scratch directory (absolute): %s", abs)

	if err := ensureDirectory(abs, "scratch"); err != nil {
		return fmt.Errorf("scratch directory error: %w", err)
	}

	logging.Debug("  Testing scratch directory write access...")
	if err := testWriteAccess(abs); err != nil {
		return fmt.Errorf("scratch directory is not writable: %w", err)
	}
	logging.Info("  [OK] Scratch directory is writable")

	return nil
}

// LogToolchain checks the external tools and logs what it finds.
// Failures are warnings so the service can still start; readiness
// probes report the degraded state.
func LogToolchain(ytdlpPath, ffmpegPath string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("TOOLCHAIN")
	logging.Info("------------------------------------------------------------")

	logToolStatus("yt-dlp", ytdlpPath, "--version")
	logToolStatus("ffmpeg", ffmpegPath, "-version")
}

func logToolStatus(name, path, versionArg string) {
	version, err := checkTool(path, versionArg)
	if err != nil {
		logging.Warn("  %s check failed: %v", name, err)
		logging.Warn("  Requests needing %s will fail", name)
		return
	}
	logging.Info("  [OK] %s is available", name)
	logging.Debug("    %s", version)
}

func checkTool(path, versionArg string) (string, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", path)
	}
	logging.Debug("  Tool path: %s", resolved)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, resolved, versionArg).Output()
	if err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}

	lines := strings.Split(string(output), "\n")
	return strings.TrimSpace(lines[0]), nil
}

// LogSweeperInit logs sweeper configuration before start
func LogSweeperInit(ttl, interval time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SWEEPER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Workspace TTL:  %v", ttl)
	logging.Info("  Sweep interval: %v", interval)
	logging.Info("  Starting sweeper...")
}

// LogSweeperStarted logs successful sweeper start
func LogSweeperStarted() {
	logging.Info("  [OK] Sweeper started")
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// Route might not have methods specified
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})

		logging.Debug("  Registered routes (%d total):", len(routes))
		for _, route := range routes {
			methodPadded := fmt.Sprintf("%-6s", route.Method)
			logging.Debug("    %s %s", methodPadded, route.Path)
		}
	}

	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Local access:")
	logging.Info("    Application:   http://localhost:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Don't return error since write access was confirmed
	}
	return nil
}
