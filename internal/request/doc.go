// Package request defines the validated request descriptor the pipeline
// operates on, the quality/mode enums, and the structural validation
// rules that turn a raw JSON body into a Descriptor.
//
// Validation here is purely structural: URL allow-listing, enum
// membership, clip-bound ordering, and flag normalization (the legacy
// fast_clip alias, audio_only implying audio extraction). Policy checks
// needing the source duration live in the resolver. No network or
// filesystem I/O happens in this package.
package request
