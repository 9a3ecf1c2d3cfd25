// Package workspace manages per-request scratch directories.
//
// Every download request runs inside its own workspace, a uniquely
// named directory under the configured scratch root. All intermediate
// files (fetched media, transcode output, sidecar artifacts, archives)
// live there, so releasing the workspace is the single cleanup action
// a request needs:
//
//	ws, err := manager.Acquire()
//	if err != nil { ... }
//	defer ws.Release()
//
// Release is idempotent and runs on every exit path, success or
// failure. A workspace must never outlive its request; response
// streaming completes before the handle is released.
//
// Crash safety comes from the Sweeper: workspaces whose directories
// outlive the configured TTL are reclaimed on a periodic tick, and an
// immediate sweep at startup clears anything a previous process left
// behind. The TTL is chosen well above the longest legitimate request
// so the sweeper can never race an in-flight download.
package workspace
