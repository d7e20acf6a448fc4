package errors

import (
	stderrors "errors"
	"io/fs"
)

// CodeFor maps a filesystem error onto an ErrorCode by checking the io/fs
// sentinels in its chain. Unrecognized errors map to CodeIO.
func CodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeUnknown
	case stderrors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case stderrors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case stderrors.Is(err, fs.ErrPermission):
		return CodePermission
	case stderrors.Is(err, stderrors.ErrUnsupported):
		return CodeUnsupported
	default:
		return CodeIO
	}
}

// FromFS wraps a filesystem error with the code CodeFor selects.
// Returns nil if err is nil. An error that already is a PlatformError keeps
// its code.
//
// Example:
//
//	if err := fsys.Remove(path); err != nil {
//	    return errors.FromFS(err, "failed to remove file")
//	}
func FromFS(err error, message string) PlatformError {
	if err == nil {
		return nil
	}
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return Wrap(err, platformErr.Code(), message)
	}
	return Wrap(err, CodeFor(err), message)
}
