// Package status provides the error vocabulary shared by streamkit packages. It
// defines a small taxonomy of failure kinds (codes) and an error type that
// carries one of them, allowing callers to branch on the kind of a failure
// without matching error strings.
package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies a kind of failure.
type Code uint8

const (
	// OK indicates the absence of a failure.
	OK Code = iota
	// CannotRead indicates that a source was exhausted (or failed) before a
	// mandatory read could be satisfied.
	CannotRead
	// CannotWrite indicates that a sink failed or reported a short write.
	CannotWrite
	// NotInitialized indicates that an operation was requested from an object
	// that wasn't configured to support it, such as a digest from a stream
	// created without a hasher.
	NotInitialized
	// NotReady indicates that an operation was requested before its result was
	// available, such as a digest from a stream that hasn't yet ended.
	NotReady
	// InvalidParameter indicates a malformed call.
	InvalidParameter
	// Unknown indicates a failure that doesn't carry a code.
	Unknown
)

// String returns the stable identifier for the code.
func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case CannotRead:
		return "cannot_read"
	case CannotWrite:
		return "cannot_write"
	case NotInitialized:
		return "not_initialized"
	case NotReady:
		return "not_ready"
	case InvalidParameter:
		return "invalid_parameter"
	default:
		return "unknown"
	}
}

// Description returns a human-readable description of the code.
func (c Code) Description() string {
	switch c {
	case OK:
		return "Success"
	case CannotRead:
		return "Unable to read"
	case CannotWrite:
		return "Unable to write"
	case NotInitialized:
		return "Not initialized"
	case NotReady:
		return "Not ready"
	case InvalidParameter:
		return "Invalid parameter"
	default:
		return "Unknown error"
	}
}

// Error is an error that carries a Code.
type Error struct {
	// Code is the failure kind.
	Code Code
	// message is the error message.
	message string
	// cause is the underlying error, if any.
	cause error
}

// Error implements error.Error.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Cause returns the underlying error for use with errors.Cause.
func (e *Error) Cause() error {
	return e.cause
}

// Unwrap returns the underlying error for use with the standard errors package.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether or not target is the sentinel error for this error's code,
// allowing comparisons like errors.Is(err, status.ErrCannotRead).
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.message == "" && t.cause == nil && t.Code == e.Code
	}
	return false
}

// Sentinel errors that match any error carrying the corresponding code when
// used with errors.Is.
var (
	ErrCannotRead       = &Error{Code: CannotRead}
	ErrCannotWrite      = &Error{Code: CannotWrite}
	ErrNotInitialized   = &Error{Code: NotInitialized}
	ErrNotReady         = &Error{Code: NotReady}
	ErrInvalidParameter = &Error{Code: InvalidParameter}
)

// New creates a new error with the specified code and message.
func New(code Code, message string) error {
	return &Error{Code: code, message: message}
}

// Errorf creates a new error with the specified code and a formatted message.
func Errorf(code Code, format string, arguments ...interface{}) error {
	return &Error{Code: code, message: fmt.Sprintf(format, arguments...)}
}

// Wrap annotates err with a code and message. If err is nil, Wrap returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, message: message, cause: err}
}

// CodeOf extracts the code from the first Error in err's chain. It returns OK
// for a nil error and Unknown for errors that don't carry a code.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return Unknown
}

// Is reports whether or not err carries the specified code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
