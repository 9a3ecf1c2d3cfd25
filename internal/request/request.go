package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"
)

// maxCustomFormatLen bounds the opaque selector escape hatch.
const maxCustomFormatLen = 500

// ClipWindow is a validated [Start, End) range in whole seconds.
type ClipWindow struct {
	Start int
	End   int
}

// Duration returns the clip length in seconds.
func (w ClipWindow) Duration() int { return w.End - w.Start }

// Descriptor is the validated, normalized form of a download request.
// It is constructed once by Parse and never mutated afterwards.
type Descriptor struct {
	URL               string
	VideoQuality      VideoQuality
	AudioQuality      AudioQuality
	Mode              Mode
	Clip              *ClipWindow
	ExtractAudio      bool
	IncludeSubtitles  bool
	SubtitleLanguages []string
	Thumbnail         bool
	Metadata          bool
	CustomFormat      string
}

// Options configures parsing. DefaultMode is applied when the request
// carries no download_mode; AllowedDomains gates the source URL.
type Options struct {
	AllowedDomains []string
	DefaultMode    Mode
}

// rawRequest is the wire shape of a download request body.
type rawRequest struct {
	URL               string       `json:"url"`
	Quality           string       `json:"quality"`
	AudioQuality      string       `json:"audio_quality"`
	DownloadMode      string       `json:"download_mode"`
	Start             *json.Number `json:"start"`
	End               *json.Number `json:"end"`
	FastClip          bool         `json:"fast_clip"`
	ExtractAudio      bool         `json:"extract_audio"`
	IncludeSubtitles  bool         `json:"include_subtitles"`
	SubtitleLanguages []string     `json:"subtitle_languages"`
	Thumbnail         bool         `json:"thumbnail"`
	Metadata          bool         `json:"metadata"`
	CustomFormat      string       `json:"custom_format"`
}

// Parse decodes and validates a request body. It performs purely
// structural checks; nothing here touches the network or filesystem.
func Parse(body io.Reader, opts Options) (*Descriptor, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw rawRequest
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, newValidationError("body", "No JSON data provided")
		}
		return nil, newValidationError("body", fmt.Sprintf("Malformed JSON body: %v", err))
	}

	d := &Descriptor{}

	if err := ValidateSourceURL(raw.URL, opts.AllowedDomains); err != nil {
		return nil, err
	}
	d.URL = raw.URL

	vq, err := ParseVideoQuality(raw.Quality)
	if err != nil {
		return nil, newQualityError("quality",
			fmt.Sprintf("Invalid quality %q: must be one of %s", raw.Quality, qualityList()))
	}
	d.VideoQuality = vq

	aq, err := ParseAudioQuality(raw.AudioQuality)
	if err != nil {
		return nil, newQualityError("audio_quality",
			fmt.Sprintf("Invalid audio quality %q: must be best or one of 320, 256, 192, 128, 64", raw.AudioQuality))
	}
	d.AudioQuality = aq

	mode, err := resolveMode(raw, opts.DefaultMode)
	if err != nil {
		return nil, err
	}
	d.Mode = mode

	clip, err := parseClip(raw.Start, raw.End)
	if err != nil {
		return nil, err
	}
	d.Clip = clip

	langs, err := parseLanguages(raw.SubtitleLanguages)
	if err != nil {
		return nil, err
	}
	d.SubtitleLanguages = langs
	d.IncludeSubtitles = raw.IncludeSubtitles || len(langs) > 0

	if err := validateCustomFormat(raw.CustomFormat); err != nil {
		return nil, err
	}
	d.CustomFormat = strings.TrimSpace(raw.CustomFormat)

	d.ExtractAudio = raw.ExtractAudio
	d.Thumbnail = raw.Thumbnail
	d.Metadata = raw.Metadata

	// audio_only implies audio extraction regardless of the flag
	if d.Mode == ModeAudioOnly {
		d.ExtractAudio = true
	}

	return d, nil
}

// ParseBytes is a convenience wrapper for callers holding the body in
// memory.
func ParseBytes(body []byte, opts Options) (*Descriptor, error) {
	return Parse(bytes.NewReader(body), opts)
}

// resolveMode applies the precedence: explicit download_mode, then the
// legacy fast_clip alias, then the configured default.
func resolveMode(raw rawRequest, def Mode) (Mode, error) {
	if raw.DownloadMode != "" {
		m, err := ParseMode(raw.DownloadMode)
		if err != nil {
			return "", newValidationError("download_mode",
				fmt.Sprintf("Invalid download mode %q: must be one of fast, balanced, precise, audio_only", raw.DownloadMode))
		}
		return m, nil
	}
	if raw.FastClip {
		return ModeFast, nil
	}
	if def == "" {
		def = ModeBalanced
	}
	return def, nil
}

// ValidateSourceURL checks that rawURL is a well-formed http(s) URL whose
// host matches one of the allowed domains (exactly or as a subdomain).
// It is exported so that metadata-only endpoints can apply the same
// allow-list without building a full Descriptor.
func ValidateSourceURL(rawURL string, allowed []string) error {
	if rawURL == "" {
		return newValidationError("url", "URL is required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return newValidationError("url", "URL is not parseable")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return newValidationError("url", "URL must use http or https")
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return newValidationError("url", "URL has no host")
	}
	for _, domain := range allowed {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}
	return newValidationError("url", "URL host is not an allowed source domain")
}

// parseClip enforces the both-or-neither invariant and the ordering
// 0 <= start < end. Length limits against the source duration are
// policy checks applied later by the resolver.
func parseClip(start, end *json.Number) (*ClipWindow, error) {
	if start == nil && end == nil {
		return nil, nil
	}
	if start == nil || end == nil {
		return nil, NewClipRangeError("start", "Start and end times must be provided together")
	}

	s, err := clipSeconds("start", *start)
	if err != nil {
		return nil, err
	}
	e, err := clipSeconds("end", *end)
	if err != nil {
		return nil, err
	}

	if s >= e {
		return nil, NewClipRangeError("start", "Start time must be less than end time")
	}

	return &ClipWindow{Start: s, End: e}, nil
}

func clipSeconds(field string, n json.Number) (int, error) {
	v, err := n.Int64()
	if err != nil {
		return 0, NewClipRangeError(field, "Start and end times must be integers")
	}
	if v < 0 {
		return 0, NewClipRangeError(field, "Start and end times must be non-negative")
	}
	return int(v), nil
}

func parseLanguages(langs []string) ([]string, error) {
	if len(langs) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, newValidationError("subtitle_languages", "Subtitle language codes must be non-empty")
		}
		out = append(out, l)
	}
	return out, nil
}

// validateCustomFormat applies syntactic sanity only; the selector is a
// documented escape hatch passed verbatim to the toolchain.
func validateCustomFormat(f string) error {
	if f == "" {
		return nil
	}
	if len(f) > maxCustomFormatLen {
		return newValidationError("custom_format", "Custom format selector is too long")
	}
	for _, r := range f {
		if unicode.IsControl(r) {
			return newValidationError("custom_format", "Custom format selector contains control characters")
		}
	}
	return nil
}

func qualityList() string {
	labels := make([]string, 0, len(VideoQualities()))
	for _, q := range VideoQualities() {
		labels = append(labels, q.String())
	}
	return strings.Join(labels, ", ")
}
