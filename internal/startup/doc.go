// Package startup handles service initialization and startup/shutdown
// logging.
//
// Configuration itself lives in the config package; this package owns
// the lifecycle output around it: the banner, system information, the
// configuration listing, scratch directory preparation, external tool
// checks, and the structured startup and shutdown sections.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogConfiguration]: The merged configuration the service runs with
//   - [InitScratch]: Scratch directory creation and write check
//   - [LogToolchain]: yt-dlp and ffmpeg availability
//   - [LogSweeperInit]: Workspace sweeper configuration
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
//
// # Example Usage
//
//	startup.PrintBanner()
//	startup.LogSystemInfo()
//
//	cfg, err := config.Load()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//	startup.LogConfiguration(cfg)
//
//	if err := startup.InitScratch(cfg.ScratchDir); err != nil {
//	    startup.LogFatal("Scratch error: %v", err)
//	}
//	startup.LogToolchain(cfg.YtDlpPath, cfg.FFmpegPath)
//
//	// Start server...
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            cfg.Port,
//	    MetricsPort:     cfg.MetricsPort,
//	    MetricsEnabled:  cfg.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
//
//	// On shutdown...
//	startup.LogShutdownInitiated("SIGTERM")
//	// ... cleanup ...
//	startup.LogShutdownComplete()
package startup
