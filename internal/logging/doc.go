// Package logging provides a simple leveled logging interface for the
// media clipper service.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information (toolchain argument dumps,
//     workspace lifecycle events)
//   - INFO: General operational messages
//   - WARN: Warning conditions (omitted side artifacts, sweep anomalies)
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The initial log level comes from the LOG_LEVEL environment variable
// (or DEBUG=true); configuration loading may override it via SetLevel.
package logging
