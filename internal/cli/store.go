package cli

import (
	"github.com/jmgilman/go/docstore"
	"github.com/jmgilman/go/docstore/errors"
	"github.com/jmgilman/go/docstore/fs/billy"
	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/fs/minio"
	"github.com/jmgilman/go/docstore/internal/config"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// NewStore builds a Store from cfg, selecting the filesystem by backend.
func NewStore(cfg *config.Config, logger *logging.Logger) (*docstore.Store, error) {
	fsys, err := newFS(cfg)
	if err != nil {
		return nil, err
	}

	opts := []docstore.Option{
		docstore.WithFS(fsys),
		docstore.WithCreateRoot(cfg.CreateRoot),
		docstore.WithLogger(logger.Slog()),
	}
	if root := cfg.RootPath(); root != "" {
		opts = append(opts, docstore.WithRoot(root))
	}
	return docstore.New(opts...), nil
}

func newFS(cfg *config.Config) (core.FS, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return billy.NewLocal(), nil
	case config.BackendMemory:
		return billy.NewMemory(), nil
	case config.BackendMinIO:
		fsys, err := minio.NewMinIO(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			Bucket:    cfg.MinIO.Bucket,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Prefix:    cfg.MinIO.Prefix,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to create minio filesystem")
		}
		return fsys, nil
	default:
		return nil, errors.WithContext(
			errors.New(errors.CodeInvalidConfig, "unsupported backend"), "backend", cfg.Backend)
	}
}
