package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/fs/minio/internal/errs"
	"github.com/jmgilman/go/docstore/fs/minio/internal/pathutil"
	"github.com/jmgilman/go/docstore/fs/minio/internal/types"
)

const (
	defaultMultipartThreshold = 5 * 1024 * 1024
	defaultRenameConcurrency  = 10

	// markerContentType tags the zero-byte objects that represent folders.
	markerContentType = "application/x-directory"
)

// MinioFS implements core.FS for MinIO/S3-compatible storage.
//
//nolint:revive // MinioFS name is intentional to match LocalFS and MemoryFS
type MinioFS struct {
	client             *minio.Client
	bucket             string
	prefix             string
	multipartThreshold int64
	renameConcurrency  int
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns error if configuration is invalid or the client cannot be built.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	multipartThreshold := cfg.MultipartThreshold
	if multipartThreshold == 0 {
		multipartThreshold = defaultMultipartThreshold
	}
	renameConcurrency := cfg.MaxRenameConcurrency
	if renameConcurrency == 0 {
		renameConcurrency = defaultRenameConcurrency
	}

	return &MinioFS{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             pathutil.NormalizePrefix(cfg.Prefix),
		multipartThreshold: multipartThreshold,
		renameConcurrency:  renameConcurrency,
	}, nil
}

// joinPath maps a filesystem name to its object key.
func (m *MinioFS) joinPath(name string) string {
	return pathutil.JoinPath(m.prefix, name)
}

// Type returns FSTypeRemote.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// Open opens the named file for streaming reads.
func (m *MinioFS) Open(name string) (fs.File, error) {
	return newStreamingFile(context.Background(), m, m.joinPath(name), name)
}

// Stat returns file information for the named file or folder.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	return m.stat(context.Background(), "stat", name)
}

// stat resolves name as an object, then as a folder marker, then as a prefix
// with children. The root always exists.
func (m *MinioFS) stat(ctx context.Context, op, name string) (*types.FileInfo, error) {
	name = pathutil.Normalize(name)
	if name == "." {
		return types.NewDirInfo(".", time.Time{}), nil
	}
	key := m.joinPath(name)
	base := pathutil.Base(name)

	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return types.NewFileInfo(base, info.Size, info.LastModified), nil
	}
	if err = errs.Translate(err); !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.PathError(op, name, err)
	}

	info, err = m.client.StatObject(ctx, m.bucket, pathutil.DirKey(key), minio.StatObjectOptions{})
	if err == nil {
		return types.NewDirInfo(base, info.LastModified), nil
	}
	if err = errs.Translate(err); !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.PathError(op, name, err)
	}

	found, err := m.hasChildren(ctx, key)
	if err != nil {
		return nil, errs.PathError(op, name, err)
	}
	if found {
		return types.NewDirInfo(base, time.Time{}), nil
	}
	return nil, errs.PathError(op, name, fs.ErrNotExist)
}

// hasChildren reports whether any object other than the folder marker lives
// under key.
func (m *MinioFS) hasChildren(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dirKey := pathutil.DirKey(key)
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: true,
		MaxKeys:   2,
	}) {
		if object.Err != nil {
			return false, errs.Translate(object.Err)
		}
		if object.Key != dirKey {
			return true, nil
		}
	}
	return false, nil
}

// checkParent fails with ErrNotExist when the parent folder of name is
// missing.
func (m *MinioFS) checkParent(ctx context.Context, op, name string) error {
	parent := pathutil.Parent(name)
	if parent == "." {
		return nil
	}
	info, err := m.stat(ctx, op, parent)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.PathError(op, name, fs.ErrNotExist)
		}
		return err
	}
	if !info.IsDir() {
		return errs.PathErrorf(op, name, "parent %s is not a directory", parent)
	}
	return nil
}

// ReadDir lists the immediate children of the named folder sorted by name.
func (m *MinioFS) ReadDir(name string) ([]fs.DirEntry, error) {
	ctx := context.Background()
	name = pathutil.Normalize(name)

	info, err := m.stat(ctx, "readdir", name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errs.PathErrorf("readdir", name, "not a directory")
	}

	prefix := pathutil.DirKey(m.joinPath(name))
	var entries []fs.DirEntry
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, errs.PathError("readdir", name, errs.Translate(object.Err))
		}
		if object.Key == prefix {
			continue
		}

		relName := strings.TrimPrefix(object.Key, prefix)
		isDir := strings.HasSuffix(relName, "/")
		relName = strings.TrimSuffix(relName, "/")
		if relName == "" {
			continue
		}
		entries = append(entries, types.NewDirEntry(relName, isDir, object.Size, object.LastModified))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile reads the named file and returns the contents.
func (m *MinioFS) ReadFile(name string) ([]byte, error) {
	key := m.joinPath(name)
	ctx := context.Background()

	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, errs.PathError("readfile", name, err)
	}
	return buf, nil
}

// Exists reports whether the named file or folder exists.
func (m *MinioFS) Exists(name string) (bool, error) {
	_, err := m.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create creates the named file for writing. The upload happens on Close.
func (m *MinioFS) Create(name string) (core.File, error) {
	return m.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, types.FileMode)
}

// OpenFile opens the named file with the specified flags.
// Supported flags: O_RDONLY, O_WRONLY, O_CREATE, O_TRUNC.
// O_RDWR, O_APPEND, O_EXCL and O_SYNC return ErrUnsupported.
func (m *MinioFS) OpenFile(name string, flag int, _ fs.FileMode) (core.File, error) {
	for _, f := range []struct {
		flag int
		name string
	}{
		{os.O_RDWR, "O_RDWR"},
		{os.O_APPEND, "O_APPEND"},
		{os.O_EXCL, "O_EXCL"},
		{os.O_SYNC, "O_SYNC"},
	} {
		if flag&f.flag != 0 {
			return nil, errs.PathErrorf("open", name, "%w: %s not supported in S3", core.ErrUnsupported, f.name)
		}
	}

	key := m.joinPath(name)
	if flag&(os.O_WRONLY|os.O_CREATE) == 0 {
		return newStreamingFile(context.Background(), m, key, name)
	}

	ctx := context.Background()
	if err := m.checkParent(ctx, "open", name); err != nil {
		return nil, err
	}
	if info, err := m.stat(ctx, "open", name); err == nil && info.IsDir() {
		return nil, errs.PathErrorf("open", name, "is a directory")
	}
	return newFileWrite(m, key, name), nil
}

// WriteFile writes data to the named file, replacing any existing object.
// The parent folder must exist.
func (m *MinioFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	file, err := m.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.Write(data); err != nil {
		return errs.PathError("writefile", name, err)
	}
	if err := file.Close(); err != nil {
		return errs.PathError("writefile", name, err)
	}
	return nil
}

// Mkdir creates a single folder marker.
// It fails with ErrExist if name exists and ErrNotExist if the parent is missing.
func (m *MinioFS) Mkdir(name string, _ fs.FileMode) error {
	ctx := context.Background()
	name = pathutil.Normalize(name)

	_, err := m.stat(ctx, "mkdir", name)
	if err == nil {
		return errs.PathError("mkdir", name, fs.ErrExist)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := m.checkParent(ctx, "mkdir", name); err != nil {
		return err
	}
	return m.putMarker(ctx, name)
}

// MkdirAll creates markers for path and every missing parent.
func (m *MinioFS) MkdirAll(path string, _ fs.FileMode) error {
	ctx := context.Background()
	path = pathutil.Normalize(path)
	if path == "." {
		return nil
	}

	parts := strings.Split(path, "/")
	for i := range parts {
		dir := strings.Join(parts[:i+1], "/")
		info, err := m.stat(ctx, "mkdir", dir)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return errs.PathErrorf("mkdir", dir, "not a directory")
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
		if err := m.putMarker(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

func (m *MinioFS) putMarker(ctx context.Context, name string) error {
	_, err := m.client.PutObject(ctx, m.bucket, pathutil.DirKey(m.joinPath(name)),
		bytes.NewReader(nil), 0, minio.PutObjectOptions{ContentType: markerContentType})
	return errs.PathError("mkdir", name, errs.Translate(err))
}

// Remove removes the named file or empty folder.
func (m *MinioFS) Remove(name string) error {
	ctx := context.Background()
	name = pathutil.Normalize(name)

	info, err := m.stat(ctx, "remove", name)
	if err != nil {
		return err
	}

	key := m.joinPath(name)
	if info.IsDir() {
		nonEmpty, err := m.hasChildren(ctx, key)
		if err != nil {
			return errs.PathError("remove", name, err)
		}
		if nonEmpty {
			return errs.PathError("remove", name, core.ErrNotEmpty)
		}
		key = pathutil.DirKey(key)
	}

	err = m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	return errs.PathError("remove", name, errs.Translate(err))
}

// RemoveAll removes path and any children it contains.
// A missing path is not an error.
func (m *MinioFS) RemoveAll(path string) error {
	ctx := context.Background()
	path = pathutil.Normalize(path)

	info, err := m.stat(ctx, "removeall", path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	key := m.joinPath(path)
	if !info.IsDir() {
		err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
		return errs.PathError("removeall", path, errs.Translate(err))
	}

	objectsCh := make(chan minio.ObjectInfo, 100)
	var listErr error
	go func() {
		defer close(objectsCh)
		for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
			Prefix:    pathutil.DirKey(key),
			Recursive: true,
		}) {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			objectsCh <- object
		}
	}()

	var firstErr error
	for rmErr := range m.client.RemoveObjects(ctx, m.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil && firstErr == nil {
			firstErr = rmErr.Err
		}
	}

	if listErr != nil {
		return errs.PathError("removeall", path, errs.Translate(listErr))
	}
	return errs.PathError("removeall", path, errs.Translate(firstErr))
}

// Rename moves oldpath to newpath by copying then deleting.
//
// The operation is not atomic. A failure during the copy phase can leave
// some objects at newpath; a failure during deletion leaves objects at both.
// Folder contents are copied in parallel, bounded by MaxRenameConcurrency.
func (m *MinioFS) Rename(oldpath, newpath string) error {
	ctx := context.Background()
	oldpath = pathutil.Normalize(oldpath)
	newpath = pathutil.Normalize(newpath)

	info, err := m.stat(ctx, "rename", oldpath)
	if err != nil {
		return err
	}
	if err := m.checkParent(ctx, "rename", newpath); err != nil {
		return err
	}

	oldKey := m.joinPath(oldpath)
	newKey := m.joinPath(newpath)
	if !info.IsDir() {
		return m.renameObject(ctx, oldKey, newKey, oldpath)
	}

	copied, err := m.parallelCopy(ctx, pathutil.DirKey(oldKey), pathutil.DirKey(newKey))
	if err != nil {
		return errs.PathError("rename", oldpath, errs.Translate(err))
	}

	toDelete := make(chan minio.ObjectInfo, len(copied))
	for _, key := range copied {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)

	for rmErr := range m.client.RemoveObjects(ctx, m.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			return errs.PathError("rename", oldpath, errs.Translate(rmErr.Err))
		}
	}
	return nil
}

func (m *MinioFS) renameObject(ctx context.Context, oldKey, newKey, oldpath string) error {
	src := minio.CopySrcOptions{Bucket: m.bucket, Object: oldKey}
	dst := minio.CopyDestOptions{Bucket: m.bucket, Object: newKey}
	if _, err := m.client.CopyObject(ctx, dst, src); err != nil {
		return errs.PathError("rename", oldpath, errs.Translate(err))
	}

	err := m.client.RemoveObject(ctx, m.bucket, oldKey, minio.RemoveObjectOptions{})
	return errs.PathError("rename", oldpath, errs.Translate(err))
}

// parallelCopy copies every object under oldPrefix to newPrefix using a
// bounded worker pool. It returns the source keys that were copied.
func (m *MinioFS) parallelCopy(ctx context.Context, oldPrefix, newPrefix string) ([]string, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.renameConcurrency)

	var copiedMu sync.Mutex
	var copied []string

	var listErr error
	for object := range m.client.ListObjects(egCtx, m.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			listErr = object.Err
			break
		}

		srcKey := object.Key
		eg.Go(func() error {
			dstKey := newPrefix + strings.TrimPrefix(srcKey, oldPrefix)
			src := minio.CopySrcOptions{Bucket: m.bucket, Object: srcKey}
			dst := minio.CopyDestOptions{Bucket: m.bucket, Object: dstKey}
			if _, err := m.client.CopyObject(egCtx, dst, src); err != nil {
				return fmt.Errorf("copy object %s to %s: %w", srcKey, dstKey, err)
			}

			copiedMu.Lock()
			copied = append(copied, srcKey)
			copiedMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, fmt.Errorf("parallel copy failed: %w", err)
	}
	return copied, listErr
}

// Chroot returns a filesystem whose keys are scoped under dir.
func (m *MinioFS) Chroot(dir string) (core.FS, error) {
	return &MinioFS{
		client:             m.client,
		bucket:             m.bucket,
		prefix:             m.joinPath(dir),
		multipartThreshold: m.multipartThreshold,
		renameConcurrency:  m.renameConcurrency,
	}, nil
}

// Compile-time interface check.
var _ core.FS = (*MinioFS)(nil)
