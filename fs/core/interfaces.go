package core

import (
	"io"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local, disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem such as an S3 bucket.
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the filesystem contract a Store is built on.
// FS explicitly embeds fs.FS for stdlib compatibility.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS
	ChrootFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
type ReadFS interface {
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)

	// Stat returns file metadata.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir reads the named directory and returns its entries sorted by
	// filename.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined, not that the path is absent.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	// The returned file must be closed when no longer needed.
	Create(name string) (File, error)

	// OpenFile opens a file with the specified flags and permissions.
	// Flag support varies by provider; unsupported combinations return
	// ErrUnsupported.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, creating it if necessary and
	// truncating it otherwise. The parent directory must exist.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Mkdir creates exactly one directory. It fails with ErrExist if the
	// path already exists and with ErrNotExist if the parent is missing.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	// If path is already a directory, MkdirAll does nothing and returns nil.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines file and directory management operations.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	// A missing path fails with ErrNotExist.
	Remove(name string) error

	// RemoveAll removes path and any children it contains.
	// If the path does not exist, RemoveAll returns nil.
	RemoveAll(path string) error

	// Rename renames (moves) oldpath to newpath.
	// Remote providers implement this as copy and delete; it is not atomic there.
	Rename(oldpath, newpath string) error
}

// ChrootFS defines the ability to create scoped filesystem views.
type ChrootFS interface {
	// Chroot returns a filesystem scoped to the given directory.
	// Operations on the returned FS are relative to dir and cannot escape it.
	Chroot(dir string) (FS, error)
}

// File represents an open file handle.
type File interface {
	fs.File
	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}

// Syncer allows syncing file contents to stable storage.
//
//	if s, ok := file.(Syncer); ok {
//	    err := s.Sync()
//	}
type Syncer interface {
	// Sync commits the current contents of the file to stable storage.
	Sync() error
}
