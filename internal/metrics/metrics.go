package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_clipper_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	AuthRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_auth_rejections_total",
			Help: "Total number of requests rejected for missing API headers",
		},
	)
)

// Download pipeline metrics
var (
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_downloads_total",
			Help: "Total number of download requests by processing mode and outcome",
		},
		[]string{"mode", "status"},
	)

	DownloadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_clipper_download_duration_seconds",
			Help:    "End-to-end download processing duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode"},
	)

	DownloadsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_downloads_in_progress",
			Help: "Number of download requests currently being processed",
		},
	)

	DownloadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_download_bytes_total",
			Help: "Total payload bytes delivered to clients",
		},
	)

	DownloadErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_download_errors_total",
			Help: "Total number of failed download requests by error class",
		},
		[]string{"class"},
	)

	QualityFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_quality_fallbacks_total",
			Help: "Total number of downloads served at a different resolution than requested",
		},
	)

	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_deliveries_total",
			Help: "Total number of completed deliveries by payload kind",
		},
		[]string{"kind"}, // "single" or "archive"
	)

	SidecarOmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_sidecar_omissions_total",
			Help: "Total number of optional artifacts skipped after a non-fatal failure",
		},
		[]string{"kind"}, // "audio", "subtitle", "thumbnail", "metadata"
	)

	QueueWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_clipper_queue_wait_duration_seconds",
			Help:    "Time requests spend waiting for a worker slot",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60},
		},
	)
)

// External tool metrics
var (
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_tool_invocations_total",
			Help: "Total number of external tool invocations",
		},
		[]string{"tool", "status"},
	)

	ToolInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_clipper_tool_invocation_duration_seconds",
			Help:    "External tool invocation duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"tool"},
	)
)

// Workspace metrics
var (
	WorkspacesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_workspaces_active",
			Help: "Number of scratch workspaces currently on disk",
		},
	)

	WorkspacesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_workspaces_created_total",
			Help: "Total number of scratch workspaces created",
		},
	)

	WorkspacesReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_workspaces_released_total",
			Help: "Total number of scratch workspaces released",
		},
	)

	ScratchBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_scratch_bytes",
			Help: "Total bytes used by scratch workspaces",
		},
	)

	ScratchFreeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_scratch_free_bytes",
			Help: "Free bytes on the scratch volume",
		},
	)
)

// Sweeper metrics
var (
	SweeperRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_sweeper_runs_total",
			Help: "Total number of sweeper runs",
		},
	)

	SweeperRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_sweeper_removed_total",
			Help: "Total number of expired workspaces removed by the sweeper",
		},
	)

	SweeperErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_clipper_sweeper_errors_total",
			Help: "Total number of sweeper errors",
		},
	)

	SweeperLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_sweeper_last_run_timestamp",
			Help: "Timestamp of the last sweeper run",
		},
	)

	SweeperLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_clipper_sweeper_last_run_duration_seconds",
			Help: "Duration of the last sweeper run in seconds",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_clipper_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_filesystem_operation_errors_total",
			Help: "Total number of filesystem operation errors",
		},
		[]string{"operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_clipper_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_clipper_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
