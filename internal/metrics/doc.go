// Package metrics provides Prometheus instrumentation for the media-clipper service.
//
// This package defines and exposes various metrics that can be scraped by Prometheus
// to monitor the health, performance, and behavior of the service. All metrics
// are prefixed with "media_clipper_" to avoid naming collisions with other applications.
//
// # Metric Categories
//
// The metrics are organized into the following categories:
//
// ## HTTP Metrics
//
// Track HTTP request performance and error rates:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//   - AuthRejectionsTotal: Counter of requests rejected for missing API headers
//
// ## Download Pipeline Metrics
//
// Monitor the acquisition and processing pipeline:
//   - DownloadsTotal: Counter by processing mode and outcome
//   - DownloadDuration: Histogram of end-to-end processing time by mode
//   - DownloadsInProgress: Gauge of in-flight downloads
//   - DownloadBytesTotal: Counter of payload bytes delivered
//   - DownloadErrorsTotal: Counter of failures by error class
//   - QualityFallbacksTotal: Counter of resolution substitutions
//   - DeliveriesTotal: Counter of deliveries by kind (single/archive)
//   - QueueWaitDuration: Histogram of time spent waiting for a worker slot
//
// ## External Tool Metrics
//
// Track yt-dlp and ffmpeg invocations:
//   - ToolInvocationsTotal: Counter by tool and status
//   - ToolInvocationDuration: Histogram of invocation duration by tool
//
// ## Workspace Metrics
//
// Monitor scratch storage:
//   - WorkspacesActive: Gauge of workspaces currently on disk
//   - WorkspacesCreatedTotal / WorkspacesReleasedTotal: Lifecycle counters
//   - ScratchBytes: Gauge of bytes used by workspaces
//   - ScratchFreeBytes: Gauge of free bytes on the scratch volume
//
// ## Sweeper Metrics
//
// Track TTL sweeping of leaked workspaces:
//   - SweeperRunsTotal: Counter of sweeper runs
//   - SweeperRemovedTotal: Counter of workspaces removed
//   - SweeperErrorsTotal: Counter of sweeper errors
//   - SweeperLastRunTimestamp / SweeperLastRunDuration: Last-run gauges
//
// ## Application Info
//
// Expose build information:
//   - AppInfo: Gauge with version, commit, and Go version labels
//
// # Usage
//
// Metrics are automatically registered with the default Prometheus registry
// using promauto. To expose them, mount the promhttp.Handler() on your
// metrics endpoint:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// # Recording Metrics
//
// To record metrics from other packages, import this package and use the
// exported metric variables:
//
//	import "media-clipper/internal/metrics"
//
//	// Increment a counter
//	metrics.DownloadsTotal.WithLabelValues("balanced", "success").Inc()
//
//	// Observe a histogram value
//	metrics.ToolInvocationDuration.WithLabelValues("ffmpeg").Observe(12.3)
//
//	// Set a gauge value
//	metrics.WorkspacesActive.Set(3)
//
// # Collector
//
// The package provides a [Collector] type that periodically gathers
// statistics from a [StatsProvider] and updates the corresponding gauges.
// The workspace manager implements [StatsProvider]:
//
//	collector := metrics.NewCollector(workspaceManager, 30*time.Second)
//	collector.Start()
//	defer collector.Stop()
//
// # Prometheus Queries
//
// Example PromQL queries for common use cases:
//
// Download rate by mode:
//
//	sum(rate(media_clipper_downloads_total[5m])) by (mode)
//
// P95 end-to-end processing time:
//
//	histogram_quantile(0.95, sum(rate(media_clipper_download_duration_seconds_bucket[5m])) by (le, mode))
//
// Error rate by class:
//
//	sum(rate(media_clipper_download_errors_total[5m])) by (class)
//
// Tool failure ratio:
//
//	sum(rate(media_clipper_tool_invocations_total{status="error"}[5m])) /
//	sum(rate(media_clipper_tool_invocations_total[5m]))
//
// Scratch volume pressure:
//
//	media_clipper_scratch_bytes / (media_clipper_scratch_bytes + media_clipper_scratch_free_bytes)
//
// Sweeper activity:
//
//	rate(media_clipper_sweeper_removed_total[1h])
package metrics
