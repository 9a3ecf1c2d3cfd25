package request

import "errors"

// Classification sentinels for validation failures. Wrapped by
// ValidationError so callers can branch with errors.Is while still
// surfacing the field-level message.
var (
	// ErrInvalidQuality marks a quality label outside its enum.
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrInvalidClipRange marks clip bounds that are one-sided,
	// non-integer, negative, out of order, or outside the length policy.
	ErrInvalidClipRange = errors.New("invalid clip range")
)

// ValidationError reports a structurally invalid request. Message is
// safe to surface to the caller verbatim and names the offending field.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap exposes the classification sentinel, if any.
func (e *ValidationError) Unwrap() error { return e.kind }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func newQualityError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrInvalidQuality}
}

// NewClipRangeError builds a clip-range validation failure. Exported
// because the resolver applies the same classification to length-policy
// violations it can only check once the source duration is known.
func NewClipRangeError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrInvalidClipRange}
}
