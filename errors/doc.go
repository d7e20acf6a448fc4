// Package errors provides the structured errors returned by docstore.
//
// Every failure surfaced by a Store carries an ErrorCode describing which
// part of the error taxonomy it belongs to, a classification telling the
// caller whether trying again later can help, and optional context metadata
// (the folder or file involved). The original cause is always preserved, so
// the standard library helpers keep working:
//
//	err := store.CreateFolder("reports")
//	if errors.GetCode(err) == errors.CodeAlreadyExists {
//	    // the folder is already there
//	}
//
//	if errors.Is(err, fs.ErrExist) {
//	    // same check against the underlying filesystem sentinel
//	}
//
// # Error Codes
//
//   - CodeNoRoot: the documents root could not be resolved
//   - CodeAlreadyExists: a folder with that name already exists
//   - CodeNotFound: the folder or file does not exist
//   - CodePermission: the filesystem denied the operation
//   - CodeIO: generic I/O failure, wrapping the real cause
//   - CodeList: enumerating the documents root failed
//   - CodeInvalidInput, CodeInvalidConfig, CodeUnsupported
//   - CodeUnavailable, CodeInternal, CodeUnknown
//
// # Classification
//
// CodeNoRoot, CodeList and CodeUnavailable are retryable by default: the
// condition is tied to the environment rather than the request. Everything
// else is permanent. The store itself never retries; the classification is
// there for callers that own a retry policy.
//
// # JSON
//
// ToJSON flattens any error into an ErrorResponse without exposing the
// wrapped chain, which is what the CLI prints in JSON output mode.
package errors
