package pipeline

import (
	"errors"
	"net/http"

	"media-clipper/internal/executor"
	"media-clipper/internal/packager"
	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
)

// internalMessage replaces error text we cannot vouch for. Classified
// errors carry caller-safe messages already; anything else might leak
// paths or tool output.
const internalMessage = "An unexpected error occurred while processing the request"

// Describe maps a pipeline error onto the HTTP status and caller-safe
// message for the response body. Unclassified errors collapse to a
// generic 500; the real error goes to the log, not the client.
func Describe(err error) (int, string) {
	switch {
	case isValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, resolver.ErrVideoTooLong),
		errors.Is(err, resolver.ErrClipExceedsDuration):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, resolver.ErrSourceBlocked):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, resolver.ErrSourceUnavailable):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, resolver.ErrSourceTimeout),
		errors.Is(err, executor.ErrProcessingTimeout):
		return http.StatusGatewayTimeout, err.Error()
	case errors.Is(err, executor.ErrFetchFailed),
		errors.Is(err, executor.ErrTranscodeFailed),
		errors.Is(err, packager.ErrPackaging):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

// classify buckets an error for the per-class failure counter. The
// returned strings match the label values pre-registered at startup.
func classify(err error) string {
	switch {
	case errors.Is(err, request.ErrInvalidQuality):
		return "invalid_quality"
	case errors.Is(err, request.ErrInvalidClipRange):
		return "invalid_clip_range"
	case isValidation(err):
		return "validation"
	case errors.Is(err, resolver.ErrVideoTooLong):
		return "video_too_long"
	case errors.Is(err, resolver.ErrClipExceedsDuration):
		return "clip_exceeds_duration"
	case errors.Is(err, resolver.ErrSourceBlocked):
		return "source_blocked"
	case errors.Is(err, resolver.ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, resolver.ErrSourceTimeout):
		return "source_timeout"
	case errors.Is(err, executor.ErrProcessingTimeout):
		return "processing_timeout"
	case errors.Is(err, packager.ErrPackaging):
		return "packaging"
	default:
		return "internal"
	}
}

func isValidation(err error) bool {
	var ve *request.ValidationError
	return errors.As(err, &ve)
}
