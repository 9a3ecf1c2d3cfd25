package plan

import (
	"strconv"

	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
)

// Plan is the declarative execution plan for one download request. It
// captures every decision made before any external tool runs: which
// streams to fetch, whether a transcode pass is needed, and which
// sidecar artifacts to produce. Arg-builder methods turn the plan into
// concrete command lines once workspace paths are known.
type Plan struct {
	Mode     request.Mode
	Selector string
	// CustomFormat, when set, is passed to the fetch tool verbatim and
	// suppresses both quality resolution and container merging.
	CustomFormat string
	Clip         *request.ClipWindow

	ExtractAudio bool
	AudioBitrate int

	WantSubtitles     bool
	SubtitleLanguages []string
	WantThumbnail     bool
	WantMetadata      bool
}

// Build derives an execution plan from a validated request, the
// resolved quality, and the source metadata. res may be the zero value
// for audio-only plans and custom-format plans, which bypass quality
// resolution.
func Build(d *request.Descriptor, res resolver.Resolution, meta *resolver.SourceMetadata) *Plan {
	p := &Plan{
		Mode:          d.Mode,
		CustomFormat:  d.CustomFormat,
		Clip:          d.Clip,
		ExtractAudio:  d.ExtractAudio,
		AudioBitrate:  d.AudioQuality.Bitrate(),
		WantSubtitles: d.IncludeSubtitles,
		WantThumbnail: d.Thumbnail,
		WantMetadata:  d.Metadata,
	}

	switch {
	case d.CustomFormat != "":
		// Selector stays empty; FetchArgs uses the custom format.
	case d.Mode == request.ModeAudioOnly:
		p.Selector = resolver.SelectorAudio
	default:
		p.Selector = res.Selector
	}

	if p.WantSubtitles {
		p.SubtitleLanguages = d.SubtitleLanguages
		if len(p.SubtitleLanguages) == 0 {
			p.SubtitleLanguages = meta.SubtitleLanguages
		}
	}
	return p
}

// FetchArgs builds the yt-dlp argument list for the primary media
// fetch. outputTemplate is a yt-dlp output template path such as
// "/scratch/ws/media.%(ext)s".
func (p *Plan) FetchArgs(url, outputTemplate string) []string {
	args := []string{"--no-playlist", "--no-warnings"}
	switch {
	case p.CustomFormat != "":
		args = append(args, "-f", p.CustomFormat)
	case p.Mode == request.ModeAudioOnly:
		args = append(args, "-f", p.Selector)
	default:
		args = append(args, "-f", p.Selector, "--merge-output-format", "mp4")
	}
	args = append(args, "-o", outputTemplate, url)
	return args
}

// NeedsTranscode reports whether the fetched media must pass through
// ffmpeg before delivery. Full-length video downloads are delivered
// exactly as fetched; only clipping and audio extraction re-process.
func (p *Plan) NeedsTranscode() bool {
	return p.Clip != nil || p.Mode == request.ModeAudioOnly
}

// TranscodeArgs builds the ffmpeg argument list for the clip or audio
// extraction step. The caller supplies concrete input and output
// paths inside the workspace.
func (p *Plan) TranscodeArgs(input, output string) []string {
	args := []string{"-nostdin", "-hide_banner", "-loglevel", "error", "-y"}

	if p.Mode == request.ModeAudioOnly {
		if p.Clip != nil {
			args = append(args, "-i", input,
				"-ss", strconv.Itoa(p.Clip.Start),
				"-t", strconv.Itoa(p.Clip.Duration()))
		} else {
			args = append(args, "-i", input)
		}
		args = append(args, "-vn", "-c:a", "libmp3lame", "-b:a", strconv.Itoa(p.AudioBitrate)+"k")
		args = append(args, output)
		return args
	}

	switch p.Mode {
	case request.ModeFast:
		// Seek before the input and copy streams. The cut snaps to the
		// nearest keyframe at or before the start point.
		args = append(args,
			"-ss", strconv.Itoa(p.Clip.Start),
			"-i", input,
			"-t", strconv.Itoa(p.Clip.Duration()),
			"-c:v", "copy", "-c:a", "copy",
			"-copyts", "-avoid_negative_ts", "make_zero",
			"-fflags", "+genpts")
	case request.ModePrecise:
		// Seek after the input for frame accuracy, at decode cost.
		args = append(args,
			"-i", input,
			"-ss", strconv.Itoa(p.Clip.Start),
			"-t", strconv.Itoa(p.Clip.Duration()),
			"-c:v", "libx264", "-preset", "slow", "-crf", "18",
			"-c:a", "aac", "-b:a", "192k",
			"-avoid_negative_ts", "make_zero",
			"-movflags", "+faststart")
	default:
		// Balanced: coarse input seek plus a measured re-encode.
		args = append(args,
			"-ss", strconv.Itoa(p.Clip.Start),
			"-i", input,
			"-t", strconv.Itoa(p.Clip.Duration()),
			"-c:v", "libx264", "-preset", "fast", "-crf", "23",
			"-c:a", "aac", "-b:a", "128k",
			"-avoid_negative_ts", "make_zero",
			"-movflags", "+faststart")
	}
	args = append(args, output)
	return args
}

// WantsDerivedAudio reports whether an mp3 track should be derived
// from the delivered primary as a sidecar. In audio_only mode the
// audio is the primary itself, so nothing extra is derived.
func (p *Plan) WantsDerivedAudio() bool {
	return p.ExtractAudio && p.Mode != request.ModeAudioOnly
}

// AudioExtractionArgs builds the ffmpeg argument list that derives an
// mp3 sidecar from the delivered primary. The clip window is already
// baked into the primary, so no seeking is needed here.
func (p *Plan) AudioExtractionArgs(input, output string) []string {
	return []string{
		"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-vn", "-c:a", "libmp3lame", "-b:a", strconv.Itoa(p.AudioBitrate) + "k",
		output,
	}
}

// SubtitleArgs builds the yt-dlp argument list that fetches one
// subtitle track without downloading media. Languages are fetched one
// invocation apiece so a missing track cannot fail the others.
func (p *Plan) SubtitleArgs(lang, url, outputTemplate string) []string {
	return []string{
		"--no-playlist", "--no-warnings",
		"--skip-download",
		"--write-subs",
		"--sub-langs", lang,
		"--convert-subs", "srt",
		"-o", outputTemplate,
		url,
	}
}

// ThumbnailArgs builds the yt-dlp argument list that fetches the
// source thumbnail without downloading media.
func (p *Plan) ThumbnailArgs(url, outputTemplate string) []string {
	return []string{
		"--no-playlist", "--no-warnings",
		"--skip-download",
		"--write-thumbnail",
		"-o", outputTemplate,
		url,
	}
}

// OutputExtension returns the delivery extension for the primary
// artifact given the extension of the fetched file. Audio extraction
// always yields mp3; everything else keeps the fetched container.
func (p *Plan) OutputExtension(fetchedExt string) string {
	if p.Mode == request.ModeAudioOnly {
		return ".mp3"
	}
	return fetchedExt
}

// SidecarCount reports how many optional artifacts the plan requests,
// used to decide between single-file and archive delivery.
func (p *Plan) SidecarCount() int {
	n := len(p.SubtitleLanguages)
	if p.WantsDerivedAudio() {
		n++
	}
	if p.WantThumbnail {
		n++
	}
	if p.WantMetadata {
		n++
	}
	return n
}
