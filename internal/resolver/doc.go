// Package resolver queries source video metadata through yt-dlp and
// normalizes it for the rest of the pipeline.
//
// Resolution is metadata-only: no media bytes are transferred. The
// package answers three questions about a source before any fetch is
// planned:
//
//   - What is it? Resolve returns a SourceMetadata with the title,
//     duration, uploader, available streams, and subtitle languages.
//   - Which streams satisfy the requested quality? ResolveQuality maps
//     abstract labels ("best", "720p") onto the heights the source
//     actually offers and produces the concrete selector string used
//     by the fetch step, flagging any substitution for the caller.
//   - Is it allowed? CheckPolicy enforces the duration ceilings and
//     the clip-window sanity rules.
//
// Failures are classified into sentinel errors (ErrSourceUnavailable,
// ErrSourceBlocked, ErrSourceTimeout) by scanning the extractor's
// diagnostics, so handlers can map them to response status codes with
// errors.Is.
package resolver
