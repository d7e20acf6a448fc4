// Package core defines the provider-neutral filesystem contract docstore
// runs on.
//
// A Store never touches the operating system directly. It talks to a core.FS,
// which may be backed by the local disk, an in-memory tree, or an
// S3-compatible bucket. The contract is deliberately POSIX-like: directories
// exist explicitly, Mkdir refuses to overwrite, Remove reports missing paths.
//
// # Interface Hierarchy
//
//   - ReadFS: Open, Stat, ReadDir, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, Mkdir, MkdirAll
//   - ManageFS: Remove, RemoveAll, Rename
//   - ChrootFS: Chroot
//
// FS embeds fs.FS, so any provider also works with fs.WalkDir, fs.ReadFile
// and the rest of the io/fs helpers.
//
// # Providers
//
//   - github.com/jmgilman/go/docstore/fs/billy - local disk and in-memory (go-billy)
//   - github.com/jmgilman/go/docstore/fs/minio - MinIO / S3 buckets
package core
