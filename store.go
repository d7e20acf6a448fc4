package docstore

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jmgilman/go/docstore/errors"
	"github.com/jmgilman/go/docstore/fs/billy"
	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// Store manages folders and files under a documents root.
//
// A Store holds no state besides its memoized root, so it is safe to share.
// It does not coordinate concurrent mutations of the same folder; those
// behave as the underlying filesystem does.
type Store struct {
	base       core.FS
	resolver   RootResolver
	createRoot bool
	dirPerm    fs.FileMode
	filePerm   fs.FileMode
	logger     *logging.Logger

	root func() (string, error)
}

// New creates a Store. Without options it operates on the local disk rooted
// at the current user's documents directory.
func New(opts ...Option) *Store {
	s := &Store{
		resolver: DocumentsDir,
		dirPerm:  DefaultDirPerm,
		filePerm: DefaultFilePerm,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.base == nil {
		s.base = billy.NewLocal()
	}
	s.root = sync.OnceValues(s.resolveRoot)
	return s
}

// FS returns the filesystem the store operates on.
func (s *Store) FS() core.FS {
	return s.base
}

// PathExists reports whether path exists. Absolute paths are checked as-is;
// relative paths are resolved against the documents root. Any failure,
// including an unresolvable root, reports false.
func (s *Store) PathExists(path string) (exists bool) {
	start := time.Now()
	var err error
	defer func() {
		s.logOp(logging.OpPathExists, start, &err, "path", path, "exists", exists)
	}()

	if !filepath.IsAbs(path) {
		var root string
		if root, err = s.Root(); err != nil {
			return false
		}
		path = filepath.Join(root, path)
	}

	exists, err = s.base.Exists(path)
	return err == nil && exists
}

// CreateFolder creates exactly one folder under the root. It does not create
// intermediate directories and fails with ALREADY_EXISTS if the folder is
// already present.
func (s *Store) CreateFolder(name string) (err error) {
	defer s.logOp(logging.OpCreateFolder, time.Now(), &err, "folder", name)

	path, err := s.FolderPath(name)
	if err != nil {
		return err
	}

	if err := s.base.Mkdir(path, s.dirPerm); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.WrapWithContext(err, errors.CodeAlreadyExists, "folder already exists",
				map[string]interface{}{"path": path})
		}
		return errors.WrapWithContext(err, errors.CodeIO, "failed to create folder",
			map[string]interface{}{"path": path})
	}
	return nil
}

// RemoveFolder removes the named folder and everything in it. It fails with
// NOT_FOUND when no such folder exists.
func (s *Store) RemoveFolder(name string) (err error) {
	defer s.logOp(logging.OpRemoveFolder, time.Now(), &err, "folder", name)

	path, err := s.FolderPath(name)
	if err != nil {
		return err
	}

	if err := s.requireFolder(path); err != nil {
		return err
	}

	if err := s.base.RemoveAll(path); err != nil {
		return errors.WrapWithContext(err, errors.CodeIO, "failed to remove folder",
			map[string]interface{}{"path": path})
	}
	return nil
}

// RenameFolder renames a folder under the root. The destination must not
// exist.
func (s *Store) RenameFolder(oldName, newName string) (err error) {
	defer s.logOp(logging.OpRenameFolder, time.Now(), &err, "folder", oldName, "new_folder", newName)

	oldPath, err := s.FolderPath(oldName)
	if err != nil {
		return err
	}
	newPath, err := s.FolderPath(newName)
	if err != nil {
		return err
	}

	if err := s.requireFolder(oldPath); err != nil {
		return err
	}

	exists, err := s.base.Exists(newPath)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeIO, "failed to check destination folder",
			map[string]interface{}{"path": newPath})
	}
	if exists {
		return errors.WithContext(
			errors.New(errors.CodeAlreadyExists, "destination folder already exists"),
			"path", newPath,
		)
	}

	if err := s.base.Rename(oldPath, newPath); err != nil {
		return errors.WrapWithContext(err, errors.CodeIO, "failed to rename folder",
			map[string]interface{}{"path": oldPath, "new_path": newPath})
	}
	return nil
}

// requireFolder returns NOT_FOUND unless path is an existing directory.
func (s *Store) requireFolder(path string) error {
	info, err := s.base.Stat(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.WrapWithContext(err, errors.CodeNotFound, "folder not found",
			map[string]interface{}{"path": path})
	case err != nil:
		return errors.WrapWithContext(err, errors.CodeIO, "failed to stat folder",
			map[string]interface{}{"path": path})
	case !info.IsDir():
		return errors.WithContext(
			errors.New(errors.CodeNotFound, "path is not a folder"),
			"path", path,
		)
	}
	return nil
}

// WriteFile writes data to folder/file, creating the folder first when it is
// missing. An existing file is replaced.
//
// If the folder cannot be created the returned IO_ERROR wraps the cause.
func (s *Store) WriteFile(folder, file string, data []byte) (err error) {
	defer s.logOp(logging.OpWriteFile, time.Now(), &err, "folder", folder, "file", file, "size", len(data))

	folderPath, path, err := s.filePath(folder, file)
	if err != nil {
		return err
	}

	exists, err := s.base.Exists(folderPath)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeIO, "failed to check folder",
			map[string]interface{}{"path": folderPath})
	}
	if !exists {
		if err := s.base.Mkdir(folderPath, s.dirPerm); err != nil && !stderrors.Is(err, fs.ErrExist) {
			return errors.WrapWithContext(err, errors.CodeIO, "failed to create folder for write",
				map[string]interface{}{"path": folderPath})
		}
	}

	if err := s.base.WriteFile(path, data, s.filePerm); err != nil {
		return errors.WrapWithContext(err, errors.CodeIO, "failed to write file",
			map[string]interface{}{"path": path})
	}
	return nil
}

// RemoveFile removes folder/file. It fails with NOT_FOUND when the file does
// not exist.
func (s *Store) RemoveFile(folder, file string) (err error) {
	defer s.logOp(logging.OpRemoveFile, time.Now(), &err, "folder", folder, "file", file)

	_, path, err := s.filePath(folder, file)
	if err != nil {
		return err
	}

	if err := s.base.Remove(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.WrapWithContext(err, errors.CodeNotFound, "file not found",
				map[string]interface{}{"path": path})
		}
		return errors.WrapWithContext(err, errors.CodeIO, "failed to remove file",
			map[string]interface{}{"path": path})
	}
	return nil
}

// ListFolders returns the absolute paths of the root's immediate children,
// sorted by name. Entries whose name begins with "." are skipped. Despite the
// name, regular files directly under the root are listed too.
func (s *Store) ListFolders() (paths []string, err error) {
	defer func(start time.Time) {
		s.logOp(logging.OpListFolders, start, &err, "count", len(paths))
	}(time.Now())

	root, err := s.Root()
	if err != nil {
		return nil, err
	}

	entries, err := s.base.ReadDir(root)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeList, "failed to list documents root",
			map[string]interface{}{"root": root})
	}

	paths = make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(root, entry.Name()))
	}
	return paths, nil
}

// PurgeAll removes every entry ListFolders reports.
//
// Removal stops at the first failure, leaving later entries in place; the
// returned IO_ERROR names the failing path. Nothing is rolled back.
func (s *Store) PurgeAll() (err error) {
	removed := 0
	defer func(start time.Time) {
		s.logOp(logging.OpPurgeAll, start, &err, "removed", removed)
	}(time.Now())

	paths, err := s.ListFolders()
	if err != nil {
		if errors.HasCode(err, errors.CodeList) {
			s.logger.Debug(context.Background(), "purge could not list documents root", "error", err.Error())
		}
		return err
	}

	for _, path := range paths {
		if err := s.base.RemoveAll(path); err != nil {
			return errors.WrapWithContext(err, errors.CodeIO, "failed to purge entry",
				map[string]interface{}{"path": path, "removed": removed})
		}
		removed++
	}
	return nil
}
