// Command scratchctl provides a CLI utility for managing the scratch
// directory of the media clipper service.
//
// The service normally cleans up after itself: each request's workspace
// is released when the response finishes, and a background sweep
// reclaims anything a crashed or killed process left behind. This tool
// covers the remaining operational cases, such as inspecting disk usage
// on a full volume or clearing the scratch root while the service is
// stopped.
//
// Usage:
//
//	scratchctl <command>
//
// Commands:
//
//	list        List the workspaces under the scratch root with their
//	            age, size, and whether the TTL has expired them.
//
//	sweep       Remove workspaces older than the TTL. This is the same
//	            operation the service runs periodically; running it here
//	            is safe while the service is up.
//
//	purge [-f]  Remove every workspace regardless of age. Prompts for
//	            confirmation unless -f is given. Running this against a
//	            live service will break in-flight requests.
//
// Environment:
//
//	SCRATCH_DIR   - Scratch root directory (default: $TMPDIR/media-clipper)
//	WORKSPACE_TTL - Workspace time-to-live (default: 1h)
//	CONFIG_FILE   - Optional TOML configuration file
//
// The tool reads the same configuration sources as the service, so
// pointing both at the same CONFIG_FILE keeps them operating on the
// same scratch root.
package main
