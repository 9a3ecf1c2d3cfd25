package request

import (
	"errors"
	"strings"
	"testing"
)

var testOpts = Options{
	AllowedDomains: []string{"youtube.com", "youtu.be"},
	DefaultMode:    ModeBalanced,
}

func mustParse(t *testing.T, body string) *Descriptor {
	t.Helper()
	d, err := ParseBytes([]byte(body), testOpts)
	if err != nil {
		t.Fatalf("ParseBytes(%s) error: %v", body, err)
	}
	return d
}

func mustFail(t *testing.T, body string) *ValidationError {
	t.Helper()
	_, err := ParseBytes([]byte(body), testOpts)
	if err == nil {
		t.Fatalf("ParseBytes(%s) should have failed", body)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
	return ve
}

func TestParseDefaults(t *testing.T) {
	d := mustParse(t, `{"url": "https://www.youtube.com/watch?v=abc123"}`)

	if d.VideoQuality != QualityBest {
		t.Errorf("VideoQuality = %v, want best", d.VideoQuality)
	}
	if d.AudioQuality != AudioBest {
		t.Errorf("AudioQuality = %v, want best", d.AudioQuality)
	}
	if d.Mode != ModeBalanced {
		t.Errorf("Mode = %v, want configured default balanced", d.Mode)
	}
	if d.Clip != nil {
		t.Errorf("Clip = %+v, want nil", d.Clip)
	}
	if d.ExtractAudio || d.IncludeSubtitles || d.Thumbnail || d.Metadata {
		t.Error("flags should default to false")
	}
}

func TestParseFullRequest(t *testing.T) {
	d := mustParse(t, `{
		"url": "https://youtu.be/abc123",
		"quality": "720p",
		"audio_quality": "192",
		"download_mode": "precise",
		"start": 5,
		"end": 15,
		"extract_audio": true,
		"subtitle_languages": ["en", "es"],
		"thumbnail": true,
		"metadata": true
	}`)

	if d.VideoQuality != Quality720p {
		t.Errorf("VideoQuality = %v, want 720p", d.VideoQuality)
	}
	if d.AudioQuality != Audio192 {
		t.Errorf("AudioQuality = %v, want 192", d.AudioQuality)
	}
	if d.Mode != ModePrecise {
		t.Errorf("Mode = %v, want precise", d.Mode)
	}
	if d.Clip == nil || d.Clip.Start != 5 || d.Clip.End != 15 {
		t.Errorf("Clip = %+v, want {5 15}", d.Clip)
	}
	if d.Clip.Duration() != 10 {
		t.Errorf("Clip.Duration() = %d, want 10", d.Clip.Duration())
	}
	if !d.ExtractAudio || !d.Thumbnail || !d.Metadata {
		t.Error("boolean flags lost in parsing")
	}
	if !d.IncludeSubtitles {
		t.Error("subtitle_languages should imply include_subtitles")
	}
	if len(d.SubtitleLanguages) != 2 || d.SubtitleLanguages[0] != "en" || d.SubtitleLanguages[1] != "es" {
		t.Errorf("SubtitleLanguages = %v, want [en es]", d.SubtitleLanguages)
	}
}

func TestParseURLValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"empty url", `{"url": ""}`},
		{"unsupported scheme", `{"url": "ftp://youtube.com/watch"}`},
		{"no host", `{"url": "https:///watch"}`},
		{"disallowed host", `{"url": "https://vimeo.com/12345"}`},
		{"suffix trick", `{"url": "https://notyoutube.com/watch"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := mustFail(t, tt.body)
			if ve.Field != "url" && ve.Field != "body" {
				t.Errorf("Field = %q, want url", ve.Field)
			}
		})
	}
}

func TestParseSubdomainAllowed(t *testing.T) {
	d := mustParse(t, `{"url": "https://music.youtube.com/watch?v=abc"}`)
	if d.URL == "" {
		t.Error("subdomain of an allowed domain should pass")
	}
}

func TestParseInvalidQuality(t *testing.T) {
	ve := mustFail(t, `{"url": "https://youtu.be/a", "quality": "8000p"}`)
	if !errors.Is(ve, ErrInvalidQuality) {
		t.Error("quality error should classify as ErrInvalidQuality")
	}
	if ve.Field != "quality" {
		t.Errorf("Field = %q, want quality", ve.Field)
	}

	ve = mustFail(t, `{"url": "https://youtu.be/a", "audio_quality": "999"}`)
	if !errors.Is(ve, ErrInvalidQuality) {
		t.Error("audio quality error should classify as ErrInvalidQuality")
	}
	if ve.Field != "audio_quality" {
		t.Errorf("Field = %q, want audio_quality", ve.Field)
	}
}

func TestParseModeSelection(t *testing.T) {
	t.Run("explicit mode", func(t *testing.T) {
		d := mustParse(t, `{"url": "https://youtu.be/a", "download_mode": "fast"}`)
		if d.Mode != ModeFast {
			t.Errorf("Mode = %v, want fast", d.Mode)
		}
	})

	t.Run("fast_clip alias", func(t *testing.T) {
		d := mustParse(t, `{"url": "https://youtu.be/a", "fast_clip": true}`)
		if d.Mode != ModeFast {
			t.Errorf("Mode = %v, want fast via alias", d.Mode)
		}
	})

	t.Run("explicit mode beats alias", func(t *testing.T) {
		d := mustParse(t, `{"url": "https://youtu.be/a", "fast_clip": true, "download_mode": "precise"}`)
		if d.Mode != ModePrecise {
			t.Errorf("Mode = %v, explicit mode should win", d.Mode)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		ve := mustFail(t, `{"url": "https://youtu.be/a", "download_mode": "turbo"}`)
		if ve.Field != "download_mode" {
			t.Errorf("Field = %q, want download_mode", ve.Field)
		}
	})

	t.Run("audio_only forces extraction", func(t *testing.T) {
		d := mustParse(t, `{"url": "https://youtu.be/a", "download_mode": "audio_only"}`)
		if !d.ExtractAudio {
			t.Error("audio_only must imply extract_audio")
		}
	})
}

func TestParseClipBounds(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantRange bool
	}{
		{"start without end", `{"url": "https://youtu.be/a", "start": 5}`, true},
		{"end without start", `{"url": "https://youtu.be/a", "end": 15}`, true},
		{"fractional start", `{"url": "https://youtu.be/a", "start": 5.5, "end": 15}`, true},
		{"negative start", `{"url": "https://youtu.be/a", "start": -1, "end": 15}`, true},
		{"start equals end", `{"url": "https://youtu.be/a", "start": 10, "end": 10}`, true},
		{"start after end", `{"url": "https://youtu.be/a", "start": 100, "end": 50}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := mustFail(t, tt.body)
			if got := errors.Is(ve, ErrInvalidClipRange); got != tt.wantRange {
				t.Errorf("errors.Is(ErrInvalidClipRange) = %v, want %v (err: %v)", got, tt.wantRange, ve)
			}
		})
	}

	t.Run("zero start is valid", func(t *testing.T) {
		d := mustParse(t, `{"url": "https://youtu.be/a", "start": 0, "end": 10}`)
		if d.Clip == nil || d.Clip.Start != 0 || d.Clip.End != 10 {
			t.Errorf("Clip = %+v, want {0 10}", d.Clip)
		}
	})
}

func TestParseSubtitleLanguages(t *testing.T) {
	ve := mustFail(t, `{"url": "https://youtu.be/a", "subtitle_languages": ["en", " "]}`)
	if ve.Field != "subtitle_languages" {
		t.Errorf("Field = %q, want subtitle_languages", ve.Field)
	}

	d := mustParse(t, `{"url": "https://youtu.be/a", "subtitle_languages": [" en "]}`)
	if len(d.SubtitleLanguages) != 1 || d.SubtitleLanguages[0] != "en" {
		t.Errorf("SubtitleLanguages = %v, want trimmed [en]", d.SubtitleLanguages)
	}
}

func TestParseCustomFormat(t *testing.T) {
	t.Run("accepted verbatim", func(t *testing.T) {
		d := mustParse(t, `{"url": "https://youtu.be/a", "custom_format": "bestvideo[height<=480]+bestaudio"}`)
		if d.CustomFormat != "bestvideo[height<=480]+bestaudio" {
			t.Errorf("CustomFormat = %q", d.CustomFormat)
		}
	})

	t.Run("control characters rejected", func(t *testing.T) {
		ve := mustFail(t, `{"url": "https://youtu.be/a", "custom_format": "best\n--exec evil"}`)
		if ve.Field != "custom_format" {
			t.Errorf("Field = %q, want custom_format", ve.Field)
		}
	})

	t.Run("length capped", func(t *testing.T) {
		long := strings.Repeat("a", maxCustomFormatLen+1)
		ve := mustFail(t, `{"url": "https://youtu.be/a", "custom_format": "`+long+`"}`)
		if ve.Field != "custom_format" {
			t.Errorf("Field = %q, want custom_format", ve.Field)
		}
	})
}

func TestParseEmptyBody(t *testing.T) {
	ve := mustFail(t, ``)
	if ve.Message != "No JSON data provided" {
		t.Errorf("Message = %q", ve.Message)
	}

	ve = mustFail(t, `{not json`)
	if ve.Field != "body" {
		t.Errorf("Field = %q, want body", ve.Field)
	}
}
