// Package domainerrors carries the error taxonomy shared by services and transports.
//
// Services return *Error values built with New or Wrap; transports translate the
// Code into a status without inspecting messages. Infrastructure facts (not found,
// unavailable) come from pkg/platform/sentinel and are translated by services.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies an error category independent of any transport.
type Code string

const (
	// CodeValidation marks malformed, user-correctable input.
	CodeValidation Code = "validation_error"
	// CodeInvalidTransition marks an illegal hazard lifecycle edge.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeNotFound marks a reference to a nonexistent hazard or user.
	CodeNotFound Code = "not_found"
	// CodeAggregation marks a compliance read that failed as a whole.
	CodeAggregation Code = "aggregation_failed"
	// CodeAdvisoryUnavailable marks a failed or malformed external analysis call.
	CodeAdvisoryUnavailable Code = "advisory_unavailable"

	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeTimeout      Code = "timeout"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal_error"
)

// Error is a domain error with a stable code and a caller-safe message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error without an underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
// A nil cause still yields an error so callers can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// From extracts the outermost domain error in the chain.
func From(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Is reports whether the outermost domain error in err's chain has the given code.
func Is(err error, code Code) bool {
	de, ok := From(err)
	return ok && de.Code == code
}

// HasCode reports whether any domain error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}
