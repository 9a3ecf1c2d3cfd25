package resolver

import (
	"context"
	"errors"
	"testing"
	"time"
)

const sampleInfoJSON = `{
	"title": "Test Video",
	"duration": 213.4,
	"uploader": "Test Channel",
	"upload_date": "20240115",
	"view_count": 123456,
	"description": "A test video description",
	"thumbnail": "https://example.com/thumb.jpg",
	"webpage_url": "https://www.youtube.com/watch?v=abc123",
	"formats": [
		{"format_id": "140", "ext": "m4a", "height": 0, "vcodec": "none", "acodec": "mp4a.40.2", "tbr": 129.5, "filesize": 3400000},
		{"format_id": "136", "ext": "mp4", "height": 720, "vcodec": "avc1.64001f", "acodec": "none", "tbr": 1200.0, "filesize_approx": 32000000},
		{"format_id": "137", "ext": "mp4", "height": 1080, "vcodec": "avc1.640028", "acodec": "none", "tbr": 2500.0, "filesize": 67000000},
		{"format_id": "18", "ext": "mp4", "height": 360, "vcodec": "avc1.42001E", "acodec": "mp4a.40.2", "tbr": 500.0}
	],
	"subtitles": {
		"fr": [{"ext": "vtt"}],
		"en": [{"ext": "vtt"}]
	}
}`

// fakeRunner returns a runFunc that ignores the command and yields the
// given output.
func fakeRunner(stdout, stderr string, err error) runFunc {
	return func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(stdout), []byte(stderr), err
	}
}

func newTestResolver(run runFunc) *Resolver {
	r := New("yt-dlp", 5*time.Second)
	r.run = run
	return r
}

func TestResolveParsesMetadata(t *testing.T) {
	r := newTestResolver(fakeRunner(sampleInfoJSON, "", nil))

	meta, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if meta.Title != "Test Video" {
		t.Errorf("Title = %q, want %q", meta.Title, "Test Video")
	}
	if meta.Duration != 213 {
		t.Errorf("Duration = %d, want 213", meta.Duration)
	}
	if meta.Uploader != "Test Channel" {
		t.Errorf("Uploader = %q, want %q", meta.Uploader, "Test Channel")
	}
	if meta.UploadDate != "20240115" {
		t.Errorf("UploadDate = %q, want %q", meta.UploadDate, "20240115")
	}
	if meta.ViewCount != 123456 {
		t.Errorf("ViewCount = %d, want 123456", meta.ViewCount)
	}
	if meta.ThumbnailURL != "https://example.com/thumb.jpg" {
		t.Errorf("ThumbnailURL = %q", meta.ThumbnailURL)
	}
	if len(meta.Streams) != 4 {
		t.Fatalf("got %d streams, want 4", len(meta.Streams))
	}

	// Approximate size is used when the exact size is missing.
	if meta.Streams[1].Size != 32000000 {
		t.Errorf("stream 136 Size = %d, want approx 32000000", meta.Streams[1].Size)
	}

	// Subtitle languages come back sorted.
	want := []string{"en", "fr"}
	if len(meta.SubtitleLanguages) != len(want) {
		t.Fatalf("SubtitleLanguages = %v, want %v", meta.SubtitleLanguages, want)
	}
	for i, lang := range want {
		if meta.SubtitleLanguages[i] != lang {
			t.Errorf("SubtitleLanguages[%d] = %q, want %q", i, meta.SubtitleLanguages[i], lang)
		}
	}
	if !meta.HasSubtitles() {
		t.Error("HasSubtitles() = false, want true")
	}
}

func TestResolveClassifiesFailures(t *testing.T) {
	runErr := errors.New("exit status 1")
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"private video", "ERROR: [youtube] abc: Private video. Sign in if you've been granted access", "blocked"},
		{"removed video", "ERROR: [youtube] abc: Video unavailable. This video has been removed", "unavailable"},
		{"geo restriction", "ERROR: The uploader has not made this video available in your country", "blocked"},
		{"age gate", "ERROR: Sign in to confirm your age. This video may be inappropriate", "blocked"},
		{"http 404", "ERROR: Unable to download webpage: HTTP Error 404: Not Found", "unavailable"},
		{"http 403", "ERROR: unable to download video data: HTTP Error 403: Forbidden", "blocked"},
		{"unknown failure", "ERROR: something novel went wrong", "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(fakeRunner("", tt.stderr, runErr))
			_, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc")
			if err == nil {
				t.Fatal("Resolve succeeded, want error")
			}
			switch tt.want {
			case "blocked":
				if !errors.Is(err, ErrSourceBlocked) {
					t.Errorf("error %v is not ErrSourceBlocked", err)
				}
			case "unavailable":
				if !errors.Is(err, ErrSourceUnavailable) {
					t.Errorf("error %v is not ErrSourceUnavailable", err)
				}
			}
		})
	}
}

func TestResolveTimeout(t *testing.T) {
	r := New("yt-dlp", 20*time.Millisecond)
	r.run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	_, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc")
	if !errors.Is(err, ErrSourceTimeout) {
		t.Errorf("error %v is not ErrSourceTimeout", err)
	}
}

func TestResolveMalformedOutput(t *testing.T) {
	r := newTestResolver(fakeRunner("this is not json", "", nil))

	_, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err == nil {
		t.Fatal("Resolve succeeded on malformed output")
	}
	if errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrSourceBlocked) || errors.Is(err, ErrSourceTimeout) {
		t.Errorf("parse failure %v should not map to a source error class", err)
	}
}

func TestFirstDiagnosticLine(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"error line preferred", "WARNING: something minor\nERROR: the real problem\nmore context", "the real problem"},
		{"first line fallback", "some output\nmore output", "some output"},
		{"empty output", "", "no diagnostic output"},
		{"whitespace only", "  \n\t\n", "no diagnostic output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstDiagnosticLine([]byte(tt.stderr)); got != tt.want {
				t.Errorf("firstDiagnosticLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePassesURLToRunner(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := New("/usr/local/bin/yt-dlp", time.Second)
	r.run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotName = name
		gotArgs = args
		return []byte(sampleInfoJSON), nil, nil
	}

	url := "https://www.youtube.com/watch?v=abc123"
	if _, err := r.Resolve(context.Background(), url); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if gotName != "/usr/local/bin/yt-dlp" {
		t.Errorf("command = %q, want configured path", gotName)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != url {
		t.Errorf("args = %v, want URL as final argument", gotArgs)
	}
	foundJSON := false
	foundNoPlaylist := false
	for _, a := range gotArgs {
		if a == "-J" {
			foundJSON = true
		}
		if a == "--no-playlist" {
			foundNoPlaylist = true
		}
	}
	if !foundJSON || !foundNoPlaylist {
		t.Errorf("args = %v, want -J and --no-playlist", gotArgs)
	}
}
