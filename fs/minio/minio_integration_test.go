package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/fs/fstest"
)

// bucketSeq gives every test group its own bucket in the shared container.
var bucketSeq atomic.Int64

// setupTestMinIO starts a MinIO container and returns a client for it.
func setupTestMinIO(t *testing.T) *minio.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() {
		_ = minioC.Terminate(ctx)
	})

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")

	return client
}

// newBucketFS creates a fresh bucket and returns a MinioFS over it.
func newBucketFS(t *testing.T, client *minio.Client, cfg Config) *MinioFS {
	t.Helper()

	bucket := fmt.Sprintf("docstore-%d", bucketSeq.Add(1))
	require.NoError(t, client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}))

	cfg.Client = client
	cfg.Bucket = bucket
	mfs, err := NewMinIO(cfg)
	require.NoError(t, err, "failed to create MinioFS")
	return mfs
}

func TestIntegration_Conformance(t *testing.T) {
	client := setupTestMinIO(t)

	fstest.TestSuite(t, func(t *testing.T) core.FS {
		return newBucketFS(t, client, Config{Prefix: "suite"})
	})
}

func TestIntegration_FolderMarkers(t *testing.T) {
	client := setupTestMinIO(t)
	mfs := newBucketFS(t, client, Config{})
	ctx := context.Background()

	t.Run("mkdir writes a marker object", func(t *testing.T) {
		require.NoError(t, mfs.Mkdir("empty", 0o755))

		info, err := client.StatObject(ctx, mfs.bucket, "empty/", minio.StatObjectOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), info.Size)

		entries, err := mfs.ReadDir(".")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "empty", entries[0].Name())
		assert.True(t, entries[0].IsDir())
	})

	t.Run("prefix without marker is a folder", func(t *testing.T) {
		_, err := client.PutObject(ctx, mfs.bucket, "implied/file.txt",
			bytes.NewReader([]byte("x")), 1, minio.PutObjectOptions{})
		require.NoError(t, err)

		info, err := mfs.Stat("implied")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("remove refuses non-empty folder", func(t *testing.T) {
		err := mfs.Remove("implied")
		assert.ErrorIs(t, err, core.ErrNotEmpty)
	})

	t.Run("streaming upload above threshold", func(t *testing.T) {
		small := newBucketFS(t, client, Config{MultipartThreshold: 16})
		require.NoError(t, small.Mkdir("big", 0o755))

		f, err := small.Create("big/blob.bin")
		require.NoError(t, err)
		payload := bytes.Repeat([]byte("0123456789"), 10)
		_, err = f.Write(payload[:10])
		require.NoError(t, err)
		_, err = f.Write(payload[10:])
		require.NoError(t, err)
		require.NoError(t, f.Close())

		got, err := small.ReadFile("big/blob.bin")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("seek on streaming reader", func(t *testing.T) {
		require.NoError(t, mfs.WriteFile("empty/seek.txt", []byte("hello world"), 0o644))

		f, err := mfs.Open("empty/seek.txt")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		seeker, ok := f.(io.Seeker)
		require.True(t, ok)
		_, err = seeker.Seek(6, io.SeekStart)
		require.NoError(t, err)

		got, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "world", string(got))
	})
}
