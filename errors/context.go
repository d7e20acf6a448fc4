package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new PlatformError with the context field added.
// Existing context fields are preserved.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "folder", folder)
//	err = errors.WithContext(err, "file", file)
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	platformErr := asPlatformError(err)
	merged := copyContext(platformErr.Context())
	if merged == nil {
		merged = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        merged,
		cause:          platformErr.Unwrap(),
	}
}

// WithClassification overrides the classification of an error.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}

	platformErr := asPlatformError(err)
	return &platformError{
		code:           platformErr.Code(),
		classification: classification,
		message:        platformErr.Message(),
		context:        platformErr.Context(),
		cause:          platformErr.Unwrap(),
	}
}

// asPlatformError returns the first PlatformError in err's chain, or wraps a
// plain error as CodeUnknown.
func asPlatformError(err error) PlatformError {
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		return platformErr
	}
	return &platformError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
