package apperrors

import (
	"errors"
	"fmt"
)

// Code categorizes application errors so the transport layer can map them to
// a presentation without string matching.
type Code string

const (
	// CodeNotFound marks a referenced geofence, vehicle, active event or
	// active journey that does not exist when the operation requires it.
	CodeNotFound Code = "RESOURCE_NOT_FOUND"

	// CodeValidation marks a request rejected before any state mutation:
	// duplicate geofence name, overlapping boundary, unknown vehicle ids.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeInvariant marks a state corruption: the store was asked to open a
	// second active event for a vehicle that already has one. Indicates a
	// concurrency or caller bug, never user input.
	CodeInvariant Code = "INVARIANT_VIOLATION"
)

// Error is a typed application error.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound creates a RESOURCE_NOT_FOUND error.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a VALIDATION_ERROR error.
func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Invariant creates an INVARIANT_VIOLATION error.
func Invariant(format string, args ...any) *Error {
	return &Error{Code: CodeInvariant, Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a RESOURCE_NOT_FOUND error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation reports whether err is a VALIDATION_ERROR error.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsInvariant reports whether err is an INVARIANT_VIOLATION error.
func IsInvariant(err error) bool {
	return hasCode(err, CodeInvariant)
}

func hasCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
