package errors

import "fmt"

// PlatformError is the error type returned by every docstore operation.
//
// The code tells callers what failed (NO_ROOT, LIST_FAILED, IO_ERROR and so
// on), the classification whether a retry can help, and the context which
// path or folder was involved. The underlying filesystem error stays
// reachable through Unwrap.
type PlatformError interface {
	error

	// Code returns the failure kind.
	Code() ErrorCode

	// Classification reports whether the failure is retryable.
	Classification() ErrorClassification

	// Message returns the message without the code prefix or cause.
	Message() string

	// Context returns a copy of the attached metadata, or nil.
	Context() map[string]interface{}

	// Unwrap returns the cause, or nil.
	Unwrap() error
}

// platformError is the concrete implementation of PlatformError.
// It is private to enforce construction through package functions.
type platformError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error returns the string representation of the error.
// Format: "[CODE] message" or "[CODE] message: cause" if cause is present.
func (e *platformError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code returns the error code.
func (e *platformError) Code() ErrorCode {
	return e.code
}

// Classification returns the error classification.
func (e *platformError) Classification() ErrorClassification {
	return e.classification
}

// Message returns the error message.
func (e *platformError) Message() string {
	return e.message
}

// Context returns a copy of the context map, or nil if none was attached.
func (e *platformError) Context() map[string]interface{} {
	return copyContext(e.context)
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *platformError) Unwrap() error {
	return e.cause
}
