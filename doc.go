// Package main provides the entry point for the Media Clipper service.
//
// Media Clipper is an HTTP service that downloads media from supported
// platforms, optionally clips a time range out of it, and streams the
// result back to the caller as a single file or a zip archive with
// sidecar files (audio extract, subtitles, thumbnail, metadata).
//
// # Application Lifecycle
//
// The application follows a structured initialization sequence:
//
//  1. Memory Setup: Sets GOMEMLIMIT from the container memory limit
//  2. Configuration Loading: Merges defaults, an optional TOML file,
//     and environment variables
//  3. Scratch Setup: Creates the scratch root and verifies write access
//  4. Toolchain Check: Probes yt-dlp and ffmpeg (warnings only)
//  5. Component Initialization:
//     - Workspace Manager: Per-request scratch directories with a TTL
//     - Sweeper: Reclaims expired workspaces in the background
//     - Metrics Collector: Gathers Prometheus metrics
//     - Pipeline: Validation, resolution, planning, and execution
//  6. HTTP Server Setup: Configures routes, middleware, and starts server
//  7. Graceful Shutdown: Handles SIGINT/SIGTERM, stops all components cleanly
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - POST /download: full pipeline run, artifact streamed back
//     - POST /info: metadata resolution without downloading
//     - GET /: service description
//     - GET /health, /healthz, /livez, /readyz, /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//     - Health check endpoint (/health)
//
// The middleware chain applies gzip compression, W3C request logging,
// Prometheus request metrics, and API header enforcement, in that order
// from the outside in.
//
// # Configuration
//
// Configuration comes from an optional TOML file (CONFIG_FILE or
// ./media-clipper.toml) overridden by environment variables. See the
// config package for the full list of settings.
//
// # Graceful Shutdown
//
// The application handles SIGINT and SIGTERM signals gracefully:
//
//  1. Stop the workspace sweeper
//  2. Stop the metrics collector
//  3. Shutdown main HTTP server (30s timeout)
//  4. Shutdown metrics server (if running)
//
// Workspaces on disk deliberately survive restarts; the TTL sweep
// reclaims them once the service is back up.
//
// # External Tools
//
// The service shells out to two tools and fails requests cleanly when
// they are missing:
//
//   - yt-dlp: metadata resolution, media fetch, subtitles, thumbnails
//   - ffmpeg: clipping, transcoding, audio extraction
//
// # Related Packages
//
//   - [media-clipper/internal/request]: Request parsing and validation
//   - [media-clipper/internal/resolver]: Source metadata and quality resolution
//   - [media-clipper/internal/plan]: Execution planning per processing mode
//   - [media-clipper/internal/executor]: yt-dlp and ffmpeg invocation
//   - [media-clipper/internal/packager]: Single-file and archive delivery
//   - [media-clipper/internal/pipeline]: End-to-end orchestration
//   - [media-clipper/internal/workspace]: Scratch directory lifecycle
//   - [media-clipper/internal/handlers]: HTTP request handlers
//   - [media-clipper/internal/middleware]: HTTP middleware (auth, logging, metrics)
//   - [media-clipper/internal/streaming]: Timeout-aware response streaming
//   - [media-clipper/internal/filesystem]: Retrying filesystem helpers
//   - [media-clipper/internal/config]: Configuration loading
//   - [media-clipper/internal/logging]: Leveled logging
//   - [media-clipper/internal/metrics]: Prometheus metrics
//   - [media-clipper/internal/memory]: GOMEMLIMIT configuration
//   - [media-clipper/internal/startup]: Initialization and lifecycle logging
package main
