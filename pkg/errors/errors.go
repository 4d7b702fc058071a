// Package errors provides the unified error type and factory functions for
// the regintel engine.  Every layer (domain, extraction, registrar,
// interfaces) uses AppError as the single carrier for structured error
// information, enabling consistent logging and caller-side classification.
//
// Note that field-validation rejections are deliberately NOT errors: a
// candidate value that fails a validator is dropped silently, because
// rejection is the expected, high-frequency outcome of extraction.  AppError
// is reserved for genuine failures such as registrar transport errors or
// unusable input.
package errors

import (
	"errors"
	"fmt"
)

// AppError is the single structured error type used throughout regintel.
// It satisfies the standard error interface and supports Go 1.13+ error
// wrapping so that errors.Is / errors.As / errors.Unwrap work transparently.
//
// Usage:
//
//	return errors.New(errors.ErrCodeRDAPUnavailable, "rdap query failed")
//	return errors.Wrap(err, errors.ErrCodeWhoisParseFailed, "unparseable whois response")
type AppError struct {
	// Code is the typed error code that identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description of the error.
	Message string

	// Detail carries supplementary context (domain name, source URL, etc.)
	// that aids debugging without bloating the message.
	Detail string

	// Cause is the underlying error, enabling errors.Is / errors.As
	// traversal of the full chain.
	Cause error
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>", detail omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// Safe to call on a nil pointer.
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf constructs a fresh AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an AppError that wraps an existing error.  If err is nil,
// Wrap returns nil so it can be used inline:
//
//	return errors.Wrap(lookupErr, errors.ErrCodeWhoisUnavailable, "whois lookup failed")
//
// When err is already an *AppError and code is CodeUnknown the original code
// is preserved, so cross-layer propagation does not lose classification.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the ErrorCode from the first *AppError found in err's
// chain, or CodeUnknown when none is present.  Useful in metrics/logging
// layers that need a single label without coupling to specific failures.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// IsTimeout reports whether any error in err's chain carries a timeout code.
func IsTimeout(err error) bool {
	return IsCode(err, ErrCodeTimeout) || IsCode(err, ErrCodeLookupTimeout)
}
