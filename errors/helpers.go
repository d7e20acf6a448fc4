package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or not a PlatformError.
//
// The code is taken from the outermost PlatformError in the chain.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // nothing to remove
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}

	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}

// GetClassification extracts the ErrorClassification from an error.
// Returns ClassificationPermanent if the error is nil or not a PlatformError.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false if the error is nil or not a PlatformError.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
