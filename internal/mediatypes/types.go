package mediatypes

import (
	"path/filepath"
	"strings"
)

// Kind classifies an artifact produced by the pipeline.
type Kind string

const (
	// KindVideo represents a video artifact.
	KindVideo Kind = "video"
	// KindAudio represents an audio artifact.
	KindAudio Kind = "audio"
	// KindSubtitle represents a subtitle track artifact.
	KindSubtitle Kind = "subtitle"
	// KindThumbnail represents a thumbnail image artifact.
	KindThumbnail Kind = "thumbnail"
	// KindMetadata represents a metadata sidecar artifact.
	KindMetadata Kind = "metadata"
	// KindArchive represents a multi-artifact archive.
	KindArchive Kind = "archive"
	// KindOther represents an unrecognized artifact type.
	KindOther Kind = "other"
)

// VideoExtensions maps file extensions to whether they are recognized
// video container formats the toolchain can emit.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".mov":  true,
	".m4v":  true,
	".avi":  true,
	".flv":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
}

// AudioExtensions maps file extensions to recognized audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".aac":  true,
	".opus": true,
	".ogg":  true,
	".oga":  true,
	".wav":  true,
	".flac": true,
}

// SubtitleExtensions maps file extensions to recognized subtitle formats.
var SubtitleExtensions = map[string]bool{
	".srt": true,
	".vtt": true,
	".ass": true,
}

// ImageExtensions maps file extensions to recognized thumbnail formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Video containers
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".m4v":  "video/x-m4v",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",

	// Audio
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".opus": "audio/opus",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".wav":  "audio/wav",
	".flac": "audio/flac",

	// Subtitles
	".srt": "application/x-subrip",
	".vtt": "text/vtt",
	".ass": "text/x-ssa",

	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",

	// Sidecars and packaging
	".json": "application/json",
	".zip":  "application/zip",
}

// GetKind returns the artifact Kind for a given file extension.
// The extension should include the leading dot; case is ignored.
func GetKind(ext string) Kind {
	ext = strings.ToLower(ext)
	switch {
	case VideoExtensions[ext]:
		return KindVideo
	case AudioExtensions[ext]:
		return KindAudio
	case SubtitleExtensions[ext]:
		return KindSubtitle
	case ImageExtensions[ext]:
		return KindThumbnail
	case ext == ".json":
		return KindMetadata
	case ext == ".zip":
		return KindArchive
	default:
		return KindOther
	}
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// KindForPath classifies a produced file by its extension.
func KindForPath(path string) Kind {
	return GetKind(filepath.Ext(path))
}

// MimeForPath returns the MIME type for a produced file path.
func MimeForPath(path string) string {
	return GetMimeType(filepath.Ext(path))
}
