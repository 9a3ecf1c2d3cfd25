package resolver

import (
	"strings"
	"testing"
)

func TestInfoEnvelope(t *testing.T) {
	meta := &SourceMetadata{
		Title:             "Sample",
		Duration:          3725,
		Uploader:          "Channel",
		UploadDate:        "20240301",
		ViewCount:         42,
		Description:       "short description",
		ThumbnailURL:      "https://example.com/t.jpg",
		WebpageURL:        "https://example.com/watch",
		SubtitleLanguages: []string{"en"},
		Streams: []Stream{
			{Height: 1080, VideoCodec: "avc1"},
			{Height: 720, VideoCodec: "avc1"},
		},
	}

	info := meta.Info()
	if info.Title != "Sample" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.DurationFormatted != "01:02:05" {
		t.Errorf("DurationFormatted = %q, want 01:02:05", info.DurationFormatted)
	}
	if info.Description != "short description" {
		t.Errorf("Description = %q, short text must pass through untouched", info.Description)
	}
	if len(info.AvailableQualities) != 2 || info.AvailableQualities[0] != "1080p" {
		t.Errorf("AvailableQualities = %v, want [1080p 720p]", info.AvailableQualities)
	}
	if len(info.SubtitleLanguages) != 1 || info.SubtitleLanguages[0] != "en" {
		t.Errorf("SubtitleLanguages = %v, want [en]", info.SubtitleLanguages)
	}
	if !info.HasSubtitles {
		t.Error("HasSubtitles = false with one subtitle language")
	}
	if info.ThumbnailURL != "https://example.com/t.jpg" {
		t.Errorf("ThumbnailURL = %q", info.ThumbnailURL)
	}

	if got := (&SourceMetadata{}).Info(); got.HasSubtitles {
		t.Error("HasSubtitles = true for a source with no subtitle tracks")
	}
}

func TestInfoTruncatesLongDescription(t *testing.T) {
	meta := &SourceMetadata{Description: strings.Repeat("x", 600)}

	info := meta.Info()
	if len(info.Description) != maxDescriptionLen+3 {
		t.Errorf("Description length = %d, want %d", len(info.Description), maxDescriptionLen+3)
	}
	if !strings.HasSuffix(info.Description, "...") {
		t.Error("truncated description missing ellipsis")
	}

	meta.Description = strings.Repeat("x", maxDescriptionLen)
	if got := meta.Info().Description; strings.HasSuffix(got, "...") {
		t.Error("description at the cap must not be truncated")
	}
}
