package docstore

import (
	"io/fs"
	"log/slog"

	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// Default permissions for folders and files created by a Store.
const (
	DefaultDirPerm  fs.FileMode = 0o755
	DefaultFilePerm fs.FileMode = 0o644
)

// Option configures a Store.
type Option func(*Store)

// WithFS sets the filesystem the store operates on. Paths passed to it are
// absolute. Defaults to the local disk.
func WithFS(fsys core.FS) Option {
	return func(s *Store) {
		s.base = fsys
	}
}

// WithRoot uses a fixed documents root instead of the platform documents
// directory.
func WithRoot(path string) Option {
	return WithRootResolver(StaticRoot(path))
}

// WithRootResolver sets the function used to resolve the documents root.
// It is called at most once per Store.
func WithRootResolver(resolver RootResolver) Option {
	return func(s *Store) {
		s.resolver = resolver
	}
}

// WithCreateRoot creates the documents root, including parents, when it is
// resolved and missing. By default a missing root is a NO_ROOT failure.
func WithCreateRoot(create bool) Option {
	return func(s *Store) {
		s.createRoot = create
	}
}

// WithLogger sets the logger used for per-operation debug records.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logging.New(logger)
	}
}

// WithPermissions sets the modes used for new folders and files.
func WithPermissions(dir, file fs.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = dir
		s.filePerm = file
	}
}
