package docstore

import (
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/jmgilman/go/docstore/errors"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// ReadResult is the outcome of an asynchronous read. Exactly one of Data and
// Err is meaningful.
type ReadResult struct {
	Data []byte
	Err  error
}

// ReadFile reads folder/file on a new goroutine.
//
// The returned channel is buffered and receives exactly one ReadResult, then
// is closed. The read runs to completion even if the caller never receives.
func (s *Store) ReadFile(folder, file string) <-chan ReadResult {
	ch := make(chan ReadResult, 1)
	go func() {
		defer close(ch)
		data, err := s.readFile(folder, file)
		ch <- ReadResult{Data: data, Err: err}
	}()
	return ch
}

// ReadFileFunc reads folder/file on a new goroutine and invokes fn exactly
// once with the result, from that goroutine.
func (s *Store) ReadFileFunc(folder, file string, fn func(data []byte, err error)) {
	go func() {
		fn(s.readFile(folder, file))
	}()
}

func (s *Store) readFile(folder, file string) (data []byte, err error) {
	defer s.logOp(logging.OpReadFile, time.Now(), &err, "folder", folder, "file", file)

	_, path, err := s.filePath(folder, file)
	if err != nil {
		return nil, err
	}

	data, err = s.base.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(err, errors.CodeNotFound, "file not found",
				map[string]interface{}{"path": path})
		}
		return nil, errors.WrapWithContext(err, errors.CodeIO, "failed to read file",
			map[string]interface{}{"path": path})
	}
	return data, nil
}
