// Package executor runs execution plans by driving the external fetch
// and transcode tools inside request workspaces.
//
// The executor owns everything about talking to yt-dlp and ffmpeg:
// process invocation with per-step deadlines, locating the files the
// tools wrote, classifying their failures, and the metric accounting
// for every invocation. It deliberately owns nothing about WHAT to
// run; command arguments come fully formed from the plan package.
//
// Primary steps (fetch, transcode) are fatal on failure. Sidecar steps
// (derived audio, subtitles, thumbnail, metadata) are not: each
// subtitle language is fetched in its own tool invocation so a missing
// track degrades the payload rather than failing the request.
//
// All delivered artifacts are renamed to a stem derived from the
// sanitized source title, so archive entries and response filenames
// carry recognizable names instead of tool output templates.
package executor
