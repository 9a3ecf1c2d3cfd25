package handlers

import (
	"fmt"
	"net/http"

	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
	"media-clipper/internal/startup"
)

// serviceName appears in the service description and health responses.
const serviceName = "Media Clipper API"

// ServiceDescription describes the API surface. Served on GET / so a
// client poking the root URL learns how to talk to the service.
func (h *Handlers) ServiceDescription(w http.ResponseWriter, _ *http.Request) {
	qualities := make([]string, 0, len(request.VideoQualities()))
	for _, q := range request.VideoQualities() {
		qualities = append(qualities, string(q))
	}

	response := map[string]interface{}{
		"service":     serviceName,
		"version":     startup.Version,
		"description": "Download full or clipped media from supported platforms",
		"endpoints": map[string]string{
			"/download": "POST - Download media with optional clipping",
			"/info":     "POST - Get media information without downloading",
			"/health":   "GET - Health check",
			"/version":  "GET - Build information",
		},
		"parameters": map[string]string{
			"url":                "Media URL (required)",
			"quality":            "Video quality: best, 2160p, 1440p, 1080p, 720p, 480p, 360p, worst (optional, default: best)",
			"audio_quality":      "Audio bitrate in kbps: best, 320, 256, 192, 128, 64 (optional, default: best)",
			"download_mode":      fmt.Sprintf("Processing mode: fast, balanced, precise, audio_only (optional, default: %s)", h.cfg.DefaultMode),
			"start":              "Clip start time in whole seconds (optional, requires end)",
			"end":                "Clip end time in whole seconds (optional, requires start)",
			"extract_audio":      "Also produce an mp3 alongside the video (optional, default: false)",
			"include_subtitles":  "Include subtitle files when available (optional, default: false)",
			"subtitle_languages": "Subtitle language codes (optional, default: all available)",
			"thumbnail":          "Include the source thumbnail (optional, default: false)",
			"metadata":           "Include a metadata JSON sidecar (optional, default: false)",
			"custom_format":      "Raw format selector, bypasses quality resolution (optional)",
		},
		"limits": map[string]interface{}{
			"max_video_duration":  resolver.FormatDuration(h.cfg.MaxVideoDuration),
			"max_clip_duration":   resolver.FormatDuration(h.cfg.MaxClipDuration),
			"min_clip_duration":   fmt.Sprintf("%d second", h.cfg.MinClipDuration),
			"supported_qualities": qualities,
			"supported_modes":     []string{"fast", "balanced", "precise", "audio_only"},
			"supported_domains":   h.cfg.AllowedDomains,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
