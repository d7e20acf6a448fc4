package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Store errors.

	// CodeNoRoot indicates the documents root directory could not be resolved.
	CodeNoRoot ErrorCode = "NO_ROOT"

	// CodeList indicates enumerating the documents root failed.
	CodeList ErrorCode = "LIST_FAILED"

	// CodeIO indicates a generic filesystem failure.
	CodeIO ErrorCode = "IO_ERROR"

	// Resource errors.

	// CodeNotFound indicates a requested folder or file does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a folder or file already exists and cannot be created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodePermission indicates the filesystem denied access.
	CodePermission ErrorCode = "PERMISSION_DENIED"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeUnsupported indicates the backing filesystem cannot perform the operation.
	CodeUnsupported ErrorCode = "UNSUPPORTED"

	// System errors.

	// CodeUnavailable indicates a remote backend is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
