// Package docstore manages an application's folders and files under a single
// documents root directory.
//
// A Store is constructed once by the host and passed to every call site. It
// resolves the documents root lazily on first use and memoizes the result,
// including a failure, for its whole lifetime. Every other call re-queries the
// underlying filesystem; the store caches nothing about folders or files.
//
// Layout on disk is exactly root/folder/file. Folder and file names are single
// path segments supplied verbatim by the caller.
//
// Basic usage:
//
//	store := docstore.New()
//	if err := store.WriteFile("reports", "q3.bin", data); err != nil {
//	    return err
//	}
//	res := <-store.ReadFile("reports", "q3.bin")
//	if res.Err != nil {
//	    return res.Err
//	}
//
// Errors returned by a Store are errors.PlatformError values carrying one of
// the codes NO_ROOT, ALREADY_EXISTS, NOT_FOUND, IO_ERROR, LIST_FAILED or
// INVALID_INPUT. The underlying filesystem error is always preserved in the
// chain, so errors.Is(err, fs.ErrNotExist) keeps working.
//
// Any core.FS can back a Store: the local disk (the default), an in-memory
// filesystem for tests, or a MinIO bucket.
package docstore
