package resolver

// maxDescriptionLen caps the description carried in info payloads.
const maxDescriptionLen = 500

// VideoInfo is the caller-facing metadata envelope, shared by the info
// endpoint and the metadata sidecar artifact.
type VideoInfo struct {
	Title              string   `json:"title"`
	Duration           int      `json:"duration"`
	DurationFormatted  string   `json:"duration_formatted"`
	Uploader           string   `json:"uploader"`
	UploadDate         string   `json:"upload_date"`
	ViewCount          int64    `json:"view_count"`
	Description        string   `json:"description"`
	ThumbnailURL       string   `json:"thumbnail_url"`
	WebpageURL         string   `json:"webpage_url"`
	AvailableQualities []string `json:"available_qualities"`
	HasSubtitles       bool     `json:"has_subtitles"`
	SubtitleLanguages  []string `json:"subtitle_languages"`
}

// Info renders the metadata as the caller-facing envelope. Long
// descriptions are truncated with a trailing ellipsis.
func (m *SourceMetadata) Info() VideoInfo {
	description := m.Description
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen] + "..."
	}
	return VideoInfo{
		Title:              m.Title,
		Duration:           m.Duration,
		DurationFormatted:  FormatDuration(m.Duration),
		Uploader:           m.Uploader,
		UploadDate:         m.UploadDate,
		ViewCount:          m.ViewCount,
		Description:        description,
		ThumbnailURL:       m.ThumbnailURL,
		WebpageURL:         m.WebpageURL,
		AvailableQualities: m.AvailableQualityLabels(),
		HasSubtitles:       m.HasSubtitles(),
		SubtitleLanguages:  m.SubtitleLanguages,
	}
}
