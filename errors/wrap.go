package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with a code and message while preserving the original error.
// The wrapped error is accessible via Unwrap() and compatible with errors.Is and errors.As.
//
// If the wrapped error is a PlatformError, its classification is preserved.
// Otherwise, the default classification for the error code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := fsys.Mkdir(name, 0o755); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to create folder")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	return &platformError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message while preserving the original error.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single operation.
// The context map is copied to prevent external mutation.
//
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeIO, "failed to remove entry", map[string]interface{}{
//	    "path": entry,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	return &platformError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}

// inheritClassification returns the classification of the first PlatformError
// in err's chain, falling back to the default for code.
func inheritClassification(err error, code ErrorCode) ErrorClassification {
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Classification()
	}
	return getDefaultClassification(code)
}

func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
