package errors

import (
	"encoding/json"
)

// ErrorResponse is a flat, serializable representation of an error.
//
// The wrapped error chain is excluded; it may contain absolute paths or
// backend details that do not belong in user-facing output.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code" yaml:"code"`

	// Message is the human-readable error message.
	Message string `json:"message" yaml:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification" yaml:"classification"`

	// Context contains optional metadata about the error.
	Context map[string]interface{} `json:"context,omitempty" yaml:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for serialization.
// Returns nil if err is nil.
//
// For standard errors, uses CodeUnknown, ClassificationPermanent, and the error message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	message := err.Error()
	var context map[string]interface{}

	var platformErr PlatformError
	if As(err, &platformErr) {
		message = platformErr.Message()
		context = platformErr.Context()
	}

	return &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        message,
		Classification: string(GetClassification(err)),
		Context:        context,
	}
}

// MarshalJSON implements json.Marshaler for platformError.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, &platformError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
