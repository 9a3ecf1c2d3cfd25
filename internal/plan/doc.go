// Package plan turns a validated request and resolved source metadata
// into a declarative execution plan.
//
// The plan is pure decision-making with no side effects: it fixes the
// stream selector, decides whether a transcode pass is needed, chooses
// the processing-mode trade-off (stream copy for fast, measured
// re-encode for balanced, frame-accurate re-encode for precise, mp3
// extraction for audio-only), and enumerates the sidecar artifacts to
// collect. Arg-builder methods render the plan into concrete yt-dlp
// and ffmpeg command lines once the executor knows the workspace
// paths, which keeps every command-line detail in one testable place.
package plan
