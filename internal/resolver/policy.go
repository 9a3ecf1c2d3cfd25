package resolver

import (
	"fmt"

	"media-clipper/internal/request"
)

// Limits holds the duration policy applied to every resolved source
// before any media is fetched. All values are in seconds.
type Limits struct {
	MaxVideoDuration int
	MaxClipDuration  int
	MinClipDuration  int
	// DurationTolerance widens the clip-end check to absorb the small
	// drift between reported and actual durations.
	DurationTolerance int
}

// CheckPolicy validates a resolved source and an optional clip window
// against the configured duration limits. A zero reported duration is
// treated as unknown and skips the duration-dependent checks.
func CheckPolicy(meta *SourceMetadata, clip *request.ClipWindow, l Limits) error {
	if meta.Duration > 0 && meta.Duration > l.MaxVideoDuration {
		return fmt.Errorf("%w: video duration (%s) exceeds maximum allowed duration (%s)",
			ErrVideoTooLong, FormatDuration(meta.Duration), FormatDuration(l.MaxVideoDuration))
	}
	if clip == nil {
		return nil
	}
	if meta.Duration > 0 && clip.End > meta.Duration+l.DurationTolerance {
		return fmt.Errorf("%w: end time (%s) exceeds video duration (%s)",
			ErrClipExceedsDuration, FormatDuration(clip.End), FormatDuration(meta.Duration))
	}
	if d := clip.Duration(); d < l.MinClipDuration {
		return request.NewClipRangeError("end",
			fmt.Sprintf("Clip duration must be at least %d second(s)", l.MinClipDuration))
	} else if d > l.MaxClipDuration {
		return request.NewClipRangeError("end",
			fmt.Sprintf("Clip duration (%s) cannot exceed %s", FormatDuration(d), FormatDuration(l.MaxClipDuration)))
	}
	return nil
}

// FormatDuration renders a second count as HH:MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
