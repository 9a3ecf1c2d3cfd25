package request

import "fmt"

// VideoQuality is the abstract quality label a caller asks for. Labels
// resolve to concrete stream heights against the source's available
// formats; see the resolver package.
type VideoQuality string

const (
	QualityBest  VideoQuality = "best"
	QualityWorst VideoQuality = "worst"
	Quality2160p VideoQuality = "2160p"
	Quality1440p VideoQuality = "1440p"
	Quality1080p VideoQuality = "1080p"
	Quality720p  VideoQuality = "720p"
	Quality480p  VideoQuality = "480p"
	Quality360p  VideoQuality = "360p"
)

var videoQualities = map[VideoQuality]int{
	QualityBest:  0,
	QualityWorst: 0,
	Quality2160p: 2160,
	Quality1440p: 1440,
	Quality1080p: 1080,
	Quality720p:  720,
	Quality480p:  480,
	Quality360p:  360,
}

// ParseVideoQuality maps a label to a VideoQuality. An empty string
// means "best" (the historical default).
func ParseVideoQuality(s string) (VideoQuality, error) {
	if s == "" {
		return QualityBest, nil
	}
	q := VideoQuality(s)
	if _, ok := videoQualities[q]; !ok {
		return "", fmt.Errorf("unknown video quality %q", s)
	}
	return q, nil
}

// Height returns the pixel-height cap for a specific label, or 0 for
// the relative labels "best" and "worst".
func (q VideoQuality) Height() int {
	return videoQualities[q]
}

// IsBest reports whether the label asks for the highest available stream.
func (q VideoQuality) IsBest() bool { return q == QualityBest }

// IsWorst reports whether the label asks for the lowest available stream.
func (q VideoQuality) IsWorst() bool { return q == QualityWorst }

func (q VideoQuality) String() string { return string(q) }

// VideoQualities lists every accepted video quality label, best first.
func VideoQualities() []VideoQuality {
	return []VideoQuality{
		QualityBest, QualityWorst,
		Quality2160p, Quality1440p, Quality1080p,
		Quality720p, Quality480p, Quality360p,
	}
}

// AudioQuality is the target audio bitrate tier in kbps, or "best".
type AudioQuality string

const (
	AudioBest AudioQuality = "best"
	Audio320  AudioQuality = "320"
	Audio256  AudioQuality = "256"
	Audio192  AudioQuality = "192"
	Audio128  AudioQuality = "128"
	Audio64   AudioQuality = "64"
)

var audioBitrates = map[AudioQuality]int{
	AudioBest: 320,
	Audio320:  320,
	Audio256:  256,
	Audio192:  192,
	Audio128:  128,
	Audio64:   64,
}

// ParseAudioQuality maps a label to an AudioQuality. An empty string
// means "best".
func ParseAudioQuality(s string) (AudioQuality, error) {
	if s == "" {
		return AudioBest, nil
	}
	q := AudioQuality(s)
	if _, ok := audioBitrates[q]; !ok {
		return "", fmt.Errorf("unknown audio quality %q", s)
	}
	return q, nil
}

// Bitrate returns the target bitrate in kbps. "best" caps at 320.
func (q AudioQuality) Bitrate() int {
	return audioBitrates[q]
}

func (q AudioQuality) String() string { return string(q) }

// Mode selects the speed/fidelity trade-off for clip production.
type Mode string

const (
	// ModeFast stream-copies both streams; clip boundaries land on the
	// nearest keyframe at or before the requested start.
	ModeFast Mode = "fast"
	// ModeBalanced re-encodes with a fast preset; frame-accurate.
	ModeBalanced Mode = "balanced"
	// ModePrecise re-encodes with a slow, high-quality preset.
	ModePrecise Mode = "precise"
	// ModeAudioOnly ignores video and produces a single audio artifact.
	ModeAudioOnly Mode = "audio_only"
)

var modes = map[Mode]bool{
	ModeFast:      true,
	ModeBalanced:  true,
	ModePrecise:   true,
	ModeAudioOnly: true,
}

// ParseMode maps a label to a Mode. Empty input is not defaulted here;
// the caller decides the default (it is configuration, not a constant).
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !modes[m] {
		return "", fmt.Errorf("unknown download mode %q", s)
	}
	return m, nil
}

func (m Mode) String() string { return string(m) }
