package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/docstore/fs/core"
)

// LocalFS wraps billy's osfs for local filesystem access.
type LocalFS struct {
	adapter
}

// MemoryFS wraps billy's memfs for in-memory filesystem access.
type MemoryFS struct {
	adapter
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	baseDir string
}

// WithBaseDir roots a LocalFS at dir instead of "/".
// It has no effect on MemoryFS.
func WithBaseDir(dir string) Option {
	return func(c *config) {
		c.baseDir = dir
	}
}

// NewLocal creates a go-billy-backed local filesystem.
// The returned filesystem is rooted at "/" unless WithBaseDir is given.
func NewLocal(opts ...Option) *LocalFS {
	cfg := config{baseDir: "/"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LocalFS{adapter{bfs: osfs.New(cfg.baseDir)}}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{adapter{bfs: memfs.New()}}
}

// Chroot returns a filesystem scoped to the given directory.
func (lfs *LocalFS) Chroot(dir string) (core.FS, error) {
	bfs, err := lfs.chroot(dir)
	if err != nil {
		return nil, err
	}
	return &LocalFS{adapter{bfs: bfs}}, nil
}

// Type returns FSTypeLocal.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Chroot returns a filesystem scoped to the given directory.
func (mfs *MemoryFS) Chroot(dir string) (core.FS, error) {
	bfs, err := mfs.chroot(dir)
	if err != nil {
		return nil, err
	}
	return &MemoryFS{adapter{bfs: bfs}}, nil
}

// Type returns FSTypeMemory.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// adapter implements everything in core.FS except Chroot and Type on top of
// a billy.Filesystem.
type adapter struct {
	bfs billy.Filesystem
}

// Unwrap returns the underlying billy.Filesystem.
func (a *adapter) Unwrap() billy.Filesystem {
	return a.bfs
}

// normalize converts paths to use forward slashes consistently.
// Billy's chroot helper handles boundary checks.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// Open opens the named file for reading.
func (a *adapter) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := a.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: a.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (a *adapter) Stat(name string) (fs.FileInfo, error) {
	return a.bfs.Stat(normalize(name))
}

// ReadDir reads the named directory and returns its entries sorted by name.
func (a *adapter) ReadDir(name string) ([]fs.DirEntry, error) {
	// Billy's ReadDir returns []fs.FileInfo
	infos, err := a.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (a *adapter) ReadFile(name string) ([]byte, error) {
	f, err := a.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (a *adapter) Exists(name string) (bool, error) {
	_, err := a.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (a *adapter) Create(name string) (core.File, error) {
	return a.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

// OpenFile opens a file with the specified flags and permissions.
// With O_CREATE the parent directory must already exist.
func (a *adapter) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	if flag&os.O_CREATE != 0 {
		if err := a.checkParent("open", name); err != nil {
			return nil, err
		}
	}
	f, err := a.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: a.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (a *adapter) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := a.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Mkdir creates a single directory.
// Unlike MkdirAll, this fails if the path exists or the parent is missing.
func (a *adapter) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := a.bfs.Stat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if err := a.checkParent("mkdir", name); err != nil {
		return err
	}
	// Parent verified, so MkdirAll creates exactly one level.
	return a.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (a *adapter) MkdirAll(path string, perm fs.FileMode) error {
	return a.bfs.MkdirAll(normalize(path), perm)
}

// checkParent returns a *fs.PathError wrapping ErrNotExist when the parent
// of name is missing or not a directory.
func (a *adapter) checkParent(op, name string) error {
	parent := filepath.Dir(name)
	if parent == "." || parent == "/" {
		return nil
	}
	info, err := a.bfs.Stat(parent)
	if err != nil {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	if !info.IsDir() {
		return &fs.PathError{Op: op, Path: name, Err: errors.New("parent is not a directory")}
	}
	return nil
}

// Remove removes the named file or empty directory.
func (a *adapter) Remove(name string) error {
	return a.bfs.Remove(normalize(name))
}

// RemoveAll removes path and any children it contains.
func (a *adapter) RemoveAll(path string) error {
	path = normalize(path)
	// Billy doesn't have RemoveAll, implement via recursive removal
	info, err := a.bfs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return a.bfs.Remove(path)
	}

	entries, err := a.bfs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := a.RemoveAll(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}

	return a.bfs.Remove(path)
}

// Rename renames (moves) oldpath to newpath.
func (a *adapter) Rename(oldpath, newpath string) error {
	return a.bfs.Rename(normalize(oldpath), normalize(newpath))
}

func (a *adapter) chroot(dir string) (billy.Filesystem, error) {
	return a.bfs.Chroot(normalize(dir))
}

// Compile-time interface checks.
var (
	_ core.FS = (*LocalFS)(nil)
	_ core.FS = (*MemoryFS)(nil)
)
