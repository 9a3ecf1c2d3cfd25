// Package config loads service configuration from three layers with
// increasing precedence: compiled defaults, an optional TOML file
// (CONFIG_FILE, or media-clipper.toml in the working directory), and
// environment variables.
//
// File values are strict (a malformed duration fails the load);
// environment values degrade gracefully with a warning, keeping the
// previous setting. Validate normalizes paths and rejects inconsistent
// limit combinations before the server starts.
package config
