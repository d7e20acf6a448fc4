package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/docstore/fs/core"
)

// File wraps billy.File to implement both core.File and fs.File.
// It keeps the name it was opened with since billy.File.Name() differs
// between backends, and the filesystem so Stat can be answered.
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close implements io.Closer.
func (f *File) Close() error {
	return f.file.Close()
}

// Stat implements fs.File.Stat.
// billy.File has no Stat, so the filesystem is asked instead.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.name)
}

// Name returns the name provided to Open/Create.
func (f *File) Name() string {
	return f.name
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Sync implements core.Syncer.
// It is a no-op for backends without Sync (memfs).
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ core.File   = (*File)(nil)
	_ fs.File     = (*File)(nil)
	_ io.Seeker   = (*File)(nil)
	_ core.Syncer = (*File)(nil)
)
