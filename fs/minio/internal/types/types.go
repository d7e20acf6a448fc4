// Package types provides shared type definitions for the minio filesystem.
package types // nolint:revive // Internal package with clear purpose

import (
	"io/fs"
	"time"
)

// Default modes reported for objects and folder markers.
const (
	FileMode = fs.FileMode(0o644)
	DirMode  = fs.ModeDir | 0o755
)

// FileInfo implements fs.FileInfo for MinIO objects and folders.
type FileInfo struct {
	FileName    string
	FileSize    int64
	FileModTime time.Time
	FileMode    fs.FileMode
}

// Name returns the name of the file.
func (fi *FileInfo) Name() string { return fi.FileName }

// Size returns the length in bytes for regular files.
func (fi *FileInfo) Size() int64 { return fi.FileSize }

// Mode returns the file mode bits.
func (fi *FileInfo) Mode() fs.FileMode { return fi.FileMode }

// ModTime returns the modification time.
func (fi *FileInfo) ModTime() time.Time { return fi.FileModTime }

// IsDir returns true if this describes a directory.
func (fi *FileInfo) IsDir() bool { return fi.FileMode.IsDir() }

// Sys returns the underlying data source (always nil for S3).
func (fi *FileInfo) Sys() any { return nil }

// NewFileInfo describes a regular object.
func NewFileInfo(name string, size int64, modTime time.Time) *FileInfo {
	return &FileInfo{FileName: name, FileSize: size, FileModTime: modTime, FileMode: FileMode}
}

// NewDirInfo describes a folder, backed by a marker or implied by a prefix.
func NewDirInfo(name string, modTime time.Time) *FileInfo {
	return &FileInfo{FileName: name, FileModTime: modTime, FileMode: DirMode}
}

// DirEntry implements fs.DirEntry for objects and folders returned by a
// delimited listing.
type DirEntry struct {
	info *FileInfo
}

// NewDirEntry creates a DirEntry for a listed object or common prefix.
func NewDirEntry(name string, isDir bool, size int64, modTime time.Time) *DirEntry {
	if isDir {
		return &DirEntry{info: NewDirInfo(name, modTime)}
	}
	return &DirEntry{info: NewFileInfo(name, size, modTime)}
}

// Name returns the name of the entry.
func (e *DirEntry) Name() string { return e.info.Name() }

// IsDir reports whether the entry describes a directory.
func (e *DirEntry) IsDir() bool { return e.info.IsDir() }

// Type returns the type bits for the entry.
func (e *DirEntry) Type() fs.FileMode { return e.info.Mode().Type() }

// Info returns the FileInfo for the entry.
func (e *DirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// Compile-time interface checks.
var (
	_ fs.FileInfo = (*FileInfo)(nil)
	_ fs.DirEntry = (*DirEntry)(nil)
)
