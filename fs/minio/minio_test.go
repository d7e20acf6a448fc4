package minio

import (
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/docstore/fs/core"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid credentials",
			cfg: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "docs",
				AccessKey: "key",
				SecretKey: "secret",
			},
		},
		{
			name:    "missing bucket",
			cfg:     Config{Endpoint: "localhost:9000", AccessKey: "key", SecretKey: "secret"},
			wantErr: true,
		},
		{
			name:    "missing endpoint",
			cfg:     Config{Bucket: "docs", AccessKey: "key", SecretKey: "secret"},
			wantErr: true,
		},
		{
			name:    "missing secret",
			cfg:     Config{Endpoint: "localhost:9000", Bucket: "docs", AccessKey: "key"},
			wantErr: true,
		},
		{
			name: "negative concurrency",
			cfg: Config{
				Endpoint:             "localhost:9000",
				Bucket:               "docs",
				AccessKey:            "key",
				SecretKey:            "secret",
				MaxRenameConcurrency: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func newTestFS(t *testing.T, prefix string) *MinioFS {
	t.Helper()
	mfs, err := NewMinIO(Config{
		Endpoint:  "localhost:9000",
		Bucket:    "docs",
		AccessKey: "key",
		SecretKey: "secret",
		Prefix:    prefix,
	})
	require.NoError(t, err)
	return mfs
}

func TestNewMinIO_Defaults(t *testing.T) {
	mfs := newTestFS(t, "/tenant/")

	assert.Equal(t, "tenant", mfs.prefix)
	assert.Equal(t, int64(defaultMultipartThreshold), mfs.multipartThreshold)
	assert.Equal(t, defaultRenameConcurrency, mfs.renameConcurrency)
	assert.Equal(t, core.FSTypeRemote, mfs.Type())
}

func TestNewMinIO_InvalidConfig(t *testing.T) {
	_, err := NewMinIO(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestMinioFS_Chroot(t *testing.T) {
	mfs := newTestFS(t, "tenant")

	chrooted, err := mfs.Chroot("/documents/")
	require.NoError(t, err)

	inner, ok := chrooted.(*MinioFS)
	require.True(t, ok)
	assert.Equal(t, "tenant/documents", inner.prefix)
	assert.Equal(t, "tenant/documents/a/b.txt", inner.joinPath("a/b.txt"))
	assert.Same(t, mfs.client, inner.client)
}

func TestMinioFS_OpenFileUnsupportedFlags(t *testing.T) {
	mfs := newTestFS(t, "")

	for _, flag := range []int{os.O_RDWR, os.O_APPEND | os.O_WRONLY, os.O_EXCL | os.O_CREATE, os.O_SYNC | os.O_WRONLY} {
		_, err := mfs.OpenFile("a.txt", flag, 0o644)
		assert.ErrorIs(t, err, core.ErrUnsupported, "flag %#x", flag)

		var pathErr *fs.PathError
		assert.ErrorAs(t, err, &pathErr)
	}
}

func TestFile_BufferedWrite(t *testing.T) {
	mfs := newTestFS(t, "")
	f := newFileWrite(mfs, "docs/a.txt", "docs/a.txt")

	n, err := f.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Nil(t, f.pipeW, "small writes must stay buffered")
	assert.Equal(t, "hello", f.buffer.String())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.Name())
	assert.Equal(t, int64(5), info.Size())
	assert.Equal(t, "docs/a.txt", f.Name())

	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestFile_WriteAfterClose(t *testing.T) {
	f := &File{name: "x", closed: true}

	_, err := f.Write([]byte("x"))
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.NoError(t, f.Close())
	assert.NoError(t, f.Sync())
}
