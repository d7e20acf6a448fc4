package errors

import "fmt"

// New creates a new PlatformError with the given code and message.
// The error classification is determined by the error code using default mappings.
//
// Example:
//
//	err := errors.New(errors.CodeNoRoot, "could not determine documents directory")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new PlatformError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeAlreadyExists, "folder %q already exists", name)
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}
