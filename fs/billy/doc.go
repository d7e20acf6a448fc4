// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps go-billy's osfs and is what a Store uses by default to reach
// the user's documents directory. MemoryFS wraps memfs and is meant for tests
// and throwaway stores.
//
// Usage:
//
//	fsys := billy.NewLocal()
//	docs, err := fsys.Chroot("/home/me/Documents")
//
//	mem := billy.NewMemory()
//	err := mem.Mkdir("reports", 0o755)
//
// # Differences From Raw go-billy
//
// go-billy creates missing parent directories whenever a file is opened with
// O_CREATE. The adapters here refuse instead (ErrNotExist), so that a write
// into a folder that does not exist is visible to the caller. Mkdir creates a
// single level and fails with ErrExist when the path is already present.
//
// # Thread Safety
//
// LocalFS and MemoryFS are safe for concurrent use by multiple goroutines.
// File handles are not.
package billy
