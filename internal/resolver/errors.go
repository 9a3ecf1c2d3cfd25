package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes for metadata resolution. The pipeline maps these to
// response status classes; messages are safe to surface to callers.
var (
	// ErrSourceUnavailable means the video is removed, private, or does
	// not exist.
	ErrSourceUnavailable = errors.New("source video is unavailable")
	// ErrSourceBlocked means the origin denied access (geo restriction,
	// age gate, sign-in wall).
	ErrSourceBlocked = errors.New("origin blocked access to this content")
	// ErrSourceTimeout means metadata resolution exceeded its deadline.
	ErrSourceTimeout = errors.New("timed out resolving source metadata")
	// ErrVideoTooLong means the source exceeds the configured duration
	// ceiling.
	ErrVideoTooLong = errors.New("video is too long")
	// ErrClipExceedsDuration means the requested clip end lies beyond
	// the reported video duration.
	ErrClipExceedsDuration = errors.New("clip range exceeds video duration")
)

// blockedMarkers identify origin-side refusals in yt-dlp diagnostics.
var blockedMarkers = []string{
	"sign in to confirm",
	"age-restricted",
	"age restricted",
	"not available in your country",
	"geo restricted",
	"geo-restricted",
	"blocked",
	"http error 403",
	"access denied",
}

// unavailableMarkers identify removed or hidden content.
var unavailableMarkers = []string{
	"video unavailable",
	"private video",
	"has been removed",
	"no longer available",
	"account associated with this video has been terminated",
	"http error 404",
	"is not a valid url",
	"unable to download webpage",
}

// classifyResolveFailure maps yt-dlp diagnostic output onto the error
// taxonomy. Unrecognized failures default to ErrSourceUnavailable with
// the first diagnostic line attached, so callers never see a raw dump.
func classifyResolveFailure(stderr []byte) error {
	diag := strings.ToLower(string(stderr))

	for _, marker := range blockedMarkers {
		if strings.Contains(diag, marker) {
			return fmt.Errorf("%w: %s", ErrSourceBlocked, firstDiagnosticLine(stderr))
		}
	}
	for _, marker := range unavailableMarkers {
		if strings.Contains(diag, marker) {
			return fmt.Errorf("%w: %s", ErrSourceUnavailable, firstDiagnosticLine(stderr))
		}
	}
	return fmt.Errorf("%w: %s", ErrSourceUnavailable, firstDiagnosticLine(stderr))
}

// firstDiagnosticLine extracts the first ERROR line from tool output,
// falling back to the first non-empty line, trimmed to a sane length.
func firstDiagnosticLine(stderr []byte) string {
	lines := strings.Split(string(stderr), "\n")
	var fallback string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if fallback == "" {
			fallback = line
		}
		if strings.HasPrefix(line, "ERROR:") {
			fallback = strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
			break
		}
	}
	if fallback == "" {
		fallback = "no diagnostic output"
	}
	const maxLen = 200
	if len(fallback) > maxLen {
		fallback = fallback[:maxLen]
	}
	return fallback
}
