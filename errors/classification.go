package errors

// ErrorClassification indicates whether an error may go away on a later attempt.
type ErrorClassification string

const (
	// ClassificationRetryable indicates failures tied to the environment that may
	// succeed later, such as an unresolvable documents root.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeNoRoot:      ClassificationRetryable,
	CodeList:        ClassificationRetryable,
	CodeUnavailable: ClassificationRetryable,

	CodeIO:            ClassificationPermanent,
	CodeNotFound:      ClassificationPermanent,
	CodeAlreadyExists: ClassificationPermanent,
	CodePermission:    ClassificationPermanent,
	CodeInvalidInput:  ClassificationPermanent,
	CodeInvalidConfig: ClassificationPermanent,
	CodeUnsupported:   ClassificationPermanent,
	CodeInternal:      ClassificationPermanent,
	CodeUnknown:       ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
