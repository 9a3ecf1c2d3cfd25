// Package handlers implements the HTTP endpoints of the clip service.
//
// The media endpoints (POST /download, POST /info) drive the pipeline;
// the remaining endpoints describe the service, report its health, and
// expose build information.
package handlers
