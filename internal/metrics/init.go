package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Download pipeline (per mode × outcome) ---
	modes := []string{"fast", "balanced", "precise", "audio_only"}
	for _, mode := range modes {
		DownloadsTotal.WithLabelValues(mode, "success")
		DownloadsTotal.WithLabelValues(mode, "error")
		DownloadDuration.WithLabelValues(mode)
	}

	// --- Download error classes ---
	classes := []string{
		"validation", "invalid_quality", "invalid_clip_range",
		"source_unavailable", "source_blocked", "source_timeout",
		"video_too_long", "clip_exceeds_duration",
		"processing_timeout", "packaging", "internal",
	}
	for _, class := range classes {
		DownloadErrorsTotal.WithLabelValues(class)
	}

	// --- Delivery kinds ---
	for _, kind := range []string{"single", "archive"} {
		DeliveriesTotal.WithLabelValues(kind)
	}

	// --- Sidecar omissions ---
	for _, kind := range []string{"audio", "subtitle", "thumbnail", "metadata"} {
		SidecarOmissionsTotal.WithLabelValues(kind)
	}

	// --- External tools ---
	for _, tool := range []string{"yt-dlp", "ffmpeg"} {
		ToolInvocationsTotal.WithLabelValues(tool, "success")
		ToolInvocationsTotal.WithLabelValues(tool, "error")
		ToolInvocationDuration.WithLabelValues(tool)
	}

	// --- Filesystem operations ---
	fsOps := []string{"stat", "readdir", "remove", "size"}
	for _, op := range fsOps {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
	}
}
