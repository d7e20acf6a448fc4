package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/fs/minio/internal/errs"
	"github.com/jmgilman/go/docstore/fs/minio/internal/pathutil"
	"github.com/jmgilman/go/docstore/fs/minio/internal/types"
)

// File is a write handle for a MinIO object.
//
// Writes are buffered until they exceed the multipart threshold, after which
// the object streams through a background PutObject. Close completes the
// upload; nothing is visible in the bucket before then.
type File struct {
	fs   *MinioFS
	key  string
	name string

	buffer       *bytes.Buffer
	pipeW        *io.PipeWriter
	putRes       chan error
	bytesWritten int64
	closed       bool
}

func newFileWrite(mfs *MinioFS, key, name string) *File {
	return &File{
		fs:     mfs,
		key:    key,
		name:   name,
		buffer: new(bytes.Buffer),
	}
}

// Read is not supported on write handles.
func (f *File) Read(_ []byte) (int, error) {
	return 0, errs.PathError("read", f.name, fs.ErrInvalid)
}

// Write appends p to the pending object.
// nolint:contextcheck // io.Writer.Write signature cannot accept a context parameter
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, errs.PathError("write", f.name, fs.ErrClosed)
	}

	var (
		n   int
		err error
	)
	switch {
	case f.pipeW != nil:
		n, err = f.pipeW.Write(p)
	case int64(f.buffer.Len()+len(p)) <= f.fs.multipartThreshold:
		n, err = f.buffer.Write(p)
	default:
		n, err = f.startStreaming(p)
	}
	f.bytesWritten += int64(n)
	if err != nil {
		return n, errs.PathError("write", f.name, err)
	}
	return n, nil
}

// startStreaming switches from buffering to a piped upload, flushing the
// buffer before writing p.
// nolint:contextcheck // Background upload; io.Writer.Write cannot accept context
func (f *File) startStreaming(p []byte) (int, error) {
	pr, pw := io.Pipe()
	f.pipeW = pw
	f.putRes = make(chan error, 1)

	go func() {
		_, err := f.fs.client.PutObject(context.Background(), f.fs.bucket, f.key, pr, -1,
			minio.PutObjectOptions{ContentType: "application/octet-stream"})
		_ = pr.CloseWithError(err)
		f.putRes <- errs.Translate(err)
		close(f.putRes)
	}()

	if f.buffer.Len() > 0 {
		if _, err := pw.Write(f.buffer.Bytes()); err != nil {
			return 0, err
		}
	}
	f.buffer = nil
	return pw.Write(p)
}

// Stat reports the bytes written so far.
func (f *File) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(pathutil.Base(f.name), f.bytesWritten, time.Now()), nil
}

// Close completes the upload. It is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.pipeW != nil {
		_ = f.pipeW.Close()
		return errs.PathError("close", f.name, <-f.putRes)
	}
	return errs.PathError("close", f.name, f.upload(context.Background()))
}

// Sync uploads the buffered contents. It is a no-op once streaming started.
func (f *File) Sync() error {
	if f.closed || f.pipeW != nil {
		return nil
	}
	return errs.PathError("sync", f.name, f.upload(context.Background()))
}

func (f *File) upload(ctx context.Context) error {
	_, err := f.fs.client.PutObject(ctx, f.fs.bucket, f.key,
		bytes.NewReader(f.buffer.Bytes()), int64(f.buffer.Len()),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return errs.Translate(err)
}

// Name returns the name of the file as provided to Create.
func (f *File) Name() string {
	return f.name
}

// streamingFile reads an object without buffering it in memory.
type streamingFile struct {
	fs     *MinioFS
	key    string
	name   string
	obj    *minio.Object
	info   minio.ObjectInfo
	offset int64
	closed bool
}

func newStreamingFile(ctx context.Context, mfs *MinioFS, key, name string) (*streamingFile, error) {
	info, err := mfs.client.StatObject(ctx, mfs.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}

	obj, err := mfs.client.GetObject(ctx, mfs.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}

	return &streamingFile{fs: mfs, key: key, name: name, obj: obj, info: info}, nil
}

// Read reads up to len(p) bytes from the object.
func (f *streamingFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, errs.PathError("read", f.name, fs.ErrClosed)
	}
	n, err := f.obj.Read(p)
	f.offset += int64(n)
	if n > 0 && errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

// Close releases the underlying object stream.
func (f *streamingFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.obj.Close()
}

// Stat returns the object's metadata captured at open.
func (f *streamingFile) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(pathutil.Base(f.name), f.info.Size, f.info.LastModified), nil
}

// Name returns the name of the file.
func (f *streamingFile) Name() string {
	return f.name
}

// Write is not supported on read handles.
func (f *streamingFile) Write(_ []byte) (int, error) {
	return 0, errs.PathError("write", f.name, fs.ErrInvalid)
}

// Seek repositions the stream by reopening the object with a range request.
func (f *streamingFile) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, errs.PathError("seek", f.name, fs.ErrClosed)
	}

	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		next = f.info.Size + offset
	default:
		return 0, errs.PathError("seek", f.name, fs.ErrInvalid)
	}
	if next < 0 {
		return 0, errs.PathError("seek", f.name, fs.ErrInvalid)
	}
	if next == f.offset {
		return next, nil
	}

	opts := minio.GetObjectOptions{}
	if next > 0 {
		if err := opts.SetRange(next, 0); err != nil {
			return 0, errs.PathError("seek", f.name, err)
		}
	}

	// nolint:contextcheck // io.Seeker cannot accept context
	obj, err := f.fs.client.GetObject(context.Background(), f.fs.bucket, f.key, opts)
	if err != nil {
		return 0, errs.PathError("seek", f.name, errs.Translate(err))
	}
	_ = f.obj.Close()
	f.obj = obj
	f.offset = next
	return next, nil
}

// Compile-time interface checks.
var (
	_ core.File   = (*File)(nil)
	_ core.Syncer = (*File)(nil)

	_ core.File = (*streamingFile)(nil)
	_ io.Seeker = (*streamingFile)(nil)
)
