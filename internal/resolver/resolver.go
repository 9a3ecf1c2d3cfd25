package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"time"

	"media-clipper/internal/logging"
)

// Stream describes one downloadable rendition reported by the source.
// Height is zero for audio-only streams; codec fields hold "none" when
// the corresponding track is absent, mirroring the extractor output.
type Stream struct {
	ID         string
	Container  string
	Height     int
	VideoCodec string
	AudioCodec string
	Bitrate    float64
	Size       int64
}

// SourceMetadata is the normalized description of a source video used
// by planning, policy checks, and the info endpoint.
type SourceMetadata struct {
	Title             string
	Duration          int
	Uploader          string
	UploadDate        string
	ViewCount         int64
	Description       string
	ThumbnailURL      string
	WebpageURL        string
	Streams           []Stream
	SubtitleLanguages []string
}

// HasSubtitles reports whether the source publishes any subtitle
// tracks (automatic captions are not counted).
func (m *SourceMetadata) HasSubtitles() bool {
	return len(m.SubtitleLanguages) > 0
}

// VideoHeights returns the distinct video stream heights in ascending
// order. Audio-only streams are excluded.
func (m *SourceMetadata) VideoHeights() []int {
	seen := make(map[int]bool)
	var heights []int
	for _, s := range m.Streams {
		if s.Height <= 0 || s.VideoCodec == "" || s.VideoCodec == "none" {
			continue
		}
		if !seen[s.Height] {
			seen[s.Height] = true
			heights = append(heights, s.Height)
		}
	}
	sort.Ints(heights)
	return heights
}

// AvailableQualityLabels returns the source's video heights as quality
// labels ("1080p") in descending order, for the info envelope.
func (m *SourceMetadata) AvailableQualityLabels() []string {
	heights := m.VideoHeights()
	labels := make([]string, 0, len(heights))
	for i := len(heights) - 1; i >= 0; i-- {
		labels = append(labels, fmt.Sprintf("%dp", heights[i]))
	}
	return labels
}

// runFunc executes an external command and returns its stdout and
// stderr separately. Swappable in tests.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

// runCommand is the production runFunc backed by os/exec.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Resolver queries source metadata through the yt-dlp binary.
type Resolver struct {
	path    string
	timeout time.Duration
	run     runFunc
}

// New returns a Resolver that invokes the given yt-dlp binary with the
// given per-resolution deadline.
func New(path string, timeout time.Duration) *Resolver {
	return &Resolver{
		path:    path,
		timeout: timeout,
		run:     runCommand,
	}
}

// Resolve fetches and normalizes metadata for a single video URL. It
// never downloads media. Failures are classified as unavailable,
// blocked, or timed out; anything else (such as malformed extractor
// output) surfaces as a plain error.
func (r *Resolver) Resolve(ctx context.Context, url string) (*SourceMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{"-J", "--no-playlist", "--no-warnings", url}
	logging.Debug("Resolving metadata: %s %v", r.path, args)

	start := time.Now()
	stdout, stderr, err := r.run(ctx, r.path, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrSourceTimeout, r.timeout)
		}
		return nil, classifyResolveFailure(stderr)
	}
	logging.Debug("Metadata resolved in %v (%d bytes)", time.Since(start), len(stdout))

	var info extractorInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, fmt.Errorf("parsing extractor output: %w", err)
	}
	return metadataFromInfo(&info), nil
}

// extractorInfo mirrors the subset of yt-dlp's single-video JSON that
// the service consumes.
type extractorInfo struct {
	Title       string            `json:"title"`
	Duration    float64           `json:"duration"`
	Uploader    string            `json:"uploader"`
	UploadDate  string            `json:"upload_date"`
	ViewCount   int64             `json:"view_count"`
	Description string            `json:"description"`
	Thumbnail   string            `json:"thumbnail"`
	WebpageURL  string            `json:"webpage_url"`
	Formats     []extractorFormat `json:"formats"`
	Subtitles   map[string][]struct {
		Ext string `json:"ext"`
	} `json:"subtitles"`
}

type extractorFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Height         int     `json:"height"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	TBR            float64 `json:"tbr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

func metadataFromInfo(info *extractorInfo) *SourceMetadata {
	meta := &SourceMetadata{
		Title:        info.Title,
		Duration:     int(info.Duration),
		Uploader:     info.Uploader,
		UploadDate:   info.UploadDate,
		ViewCount:    info.ViewCount,
		Description:  info.Description,
		ThumbnailURL: info.Thumbnail,
		WebpageURL:   info.WebpageURL,
	}
	for _, f := range info.Formats {
		size := f.Filesize
		if size == 0 {
			size = f.FilesizeApprox
		}
		meta.Streams = append(meta.Streams, Stream{
			ID:         f.FormatID,
			Container:  f.Ext,
			Height:     f.Height,
			VideoCodec: f.VCodec,
			AudioCodec: f.ACodec,
			Bitrate:    f.TBR,
			Size:       size,
		})
	}
	for lang := range info.Subtitles {
		meta.SubtitleLanguages = append(meta.SubtitleLanguages, lang)
	}
	sort.Strings(meta.SubtitleLanguages)
	return meta
}
