package docstore

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/jmgilman/go/docstore/errors"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// RootResolver returns the absolute path of the documents root.
type RootResolver func() (string, error)

// DocumentsDir resolves the current user's documents directory following
// the XDG user directories conventions on Unix and the platform known
// folders on macOS and Windows.
func DocumentsDir() (string, error) {
	dir := xdg.UserDirs.Documents
	if dir == "" {
		return "", stderrors.New("platform did not provide a documents directory")
	}
	return dir, nil
}

// StaticRoot returns a resolver for a fixed path. Relative paths are made
// absolute against the working directory at resolution time.
func StaticRoot(path string) RootResolver {
	return func() (string, error) {
		if path == "" {
			return "", stderrors.New("root path is empty")
		}
		return filepath.Abs(path)
	}
}

// Root returns the documents root, resolving it on first use.
//
// The result, success or failure, is memoized for the lifetime of the Store
// and concurrent first calls resolve it once. A failure is reported with
// code NO_ROOT.
func (s *Store) Root() (string, error) {
	return s.root()
}

func (s *Store) resolveRoot() (root string, err error) {
	defer s.logOp(logging.OpResolveRoot, time.Now(), &err, "root", &root)

	root, err = s.resolver()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeNoRoot, "failed to resolve documents root")
	}
	if !filepath.IsAbs(root) {
		return "", errors.WithContext(
			errors.New(errors.CodeNoRoot, "documents root must be an absolute path"),
			"root", root,
		)
	}
	root = filepath.Clean(root)

	if s.createRoot {
		if err := s.base.MkdirAll(root, s.dirPerm); err != nil {
			return "", errors.WrapWithContext(err, errors.CodeNoRoot, "failed to create documents root",
				map[string]interface{}{"root": root})
		}
	}

	info, err := s.base.Stat(root)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeNoRoot, "documents root is not accessible",
			map[string]interface{}{"root": root})
	}
	if !info.IsDir() {
		return "", errors.WithContext(
			errors.New(errors.CodeNoRoot, "documents root is not a directory"),
			"root", root,
		)
	}

	return root, nil
}

// entryPath joins a single caller-supplied name onto dir. Names that resolve
// to dir itself or escape it are rejected with INVALID_INPUT.
func entryPath(dir, name, kind string) (string, error) {
	path := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.WithContext(
			errors.Newf(errors.CodeInvalidInput, "invalid %s name %q", kind, name),
			kind, name,
		)
	}
	return path, nil
}

// FolderPath returns the absolute path of the named folder under the root.
func (s *Store) FolderPath(name string) (string, error) {
	root, err := s.Root()
	if err != nil {
		return "", err
	}
	return entryPath(root, name, "folder")
}

// filePath returns the absolute paths of a folder and a file inside it.
func (s *Store) filePath(folder, file string) (string, string, error) {
	folderPath, err := s.FolderPath(folder)
	if err != nil {
		return "", "", err
	}
	path, err := entryPath(folderPath, file, "file")
	if err != nil {
		return "", "", err
	}
	return folderPath, path, nil
}

// logOp records an operation outcome. It is deferred with a pointer to the
// named error result so the final value is logged. Pointer fields are
// dereferenced when logged.
func (s *Store) logOp(op logging.Operation, start time.Time, errp *error, fields ...any) {
	for i, f := range fields {
		if p, ok := f.(*string); ok {
			fields[i] = *p
		}
	}
	logging.LogOperation(context.Background(), s.logger, op, time.Since(start), *errp, fields...)
}
