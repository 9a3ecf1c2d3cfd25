// Package packager turns a completed execution's artifacts into the
// single deliverable the HTTP layer streams back: the raw media file
// when nothing else was produced, or a zip archive when sidecars ride
// along.
//
// A packaging failure after the primary succeeded surfaces as
// ErrPackaging rather than silently falling back to the raw file, so
// a caller who asked for subtitles never receives a bare video that
// looks complete.
package packager
