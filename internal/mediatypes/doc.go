// Package mediatypes provides shared type definitions and utilities for
// classifying the artifacts the clipper pipeline produces.
//
// This package exists as a dependency-free foundation that can be imported
// by other packages without creating import cycles. It contains primitive
// types, constants, and pure utility functions with no external
// dependencies beyond the standard library.
//
// # Artifact Kinds
//
// The package defines a Kind enum for categorizing produced files:
//
//	mediatypes.KindVideo     // Video containers (mp4, mkv, webm, etc.)
//	mediatypes.KindAudio     // Audio files (mp3, m4a, opus, etc.)
//	mediatypes.KindSubtitle  // Subtitle tracks (srt, vtt, ass)
//	mediatypes.KindThumbnail // Thumbnail images (jpg, png, webp, gif)
//	mediatypes.KindMetadata  // Metadata sidecars (json)
//	mediatypes.KindArchive   // Multi-artifact archives (zip)
//	mediatypes.KindOther     // Unrecognized files
//
// # Extension Detection
//
// Use GetKind (or KindForPath) to classify a toolchain output. The fetch
// step can emit different containers depending on the format selector, so
// classification happens after the file exists:
//
//	kind := mediatypes.KindForPath(produced)
//	switch kind {
//	case mediatypes.KindVideo:
//	    // primary media
//	case mediatypes.KindAudio:
//	    // audio-only download
//	}
//
// # MIME Types
//
// Use GetMimeType (or MimeForPath) to get the appropriate MIME type for
// HTTP responses:
//
//	mimeType := mediatypes.MimeForPath(artifact) // e.g., "video/mp4"
//
// # Supported Formats
//
// The extension maps (VideoExtensions, AudioExtensions,
// SubtitleExtensions, ImageExtensions) can be used directly for format
// validation or iteration.
package mediatypes
