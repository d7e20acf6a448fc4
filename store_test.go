package docstore

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/docstore/errors"
	"github.com/jmgilman/go/docstore/fs/billy"
	"github.com/jmgilman/go/docstore/fs/core"
)

const memRoot = "/documents"

// newMemoryStore returns a store over an in-memory filesystem with an
// existing root at /documents.
func newMemoryStore(t *testing.T, opts ...Option) (*Store, core.FS) {
	t.Helper()
	mem := billy.NewMemory()
	require.NoError(t, mem.MkdirAll(memRoot, 0o755))
	opts = append([]Option{WithFS(mem), WithRoot(memRoot)}, opts...)
	return New(opts...), mem
}

// newLocalStore returns a store over the local disk rooted in a temp dir.
func newLocalStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	return New(WithRoot(root)), root
}

// forEachBackend runs fn against both the memory and local disk backends.
func forEachBackend(t *testing.T, fn func(t *testing.T, store *Store, root string)) {
	t.Run("memory", func(t *testing.T) {
		store, _ := newMemoryStore(t)
		fn(t, store, memRoot)
	})
	t.Run("local", func(t *testing.T) {
		store, root := newLocalStore(t)
		fn(t, store, root)
	})
}

func TestStore_CreateFolder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		require.NoError(t, store.CreateFolder("A"))
		assert.True(t, store.PathExists(filepath.Join(root, "A")))
		assert.True(t, store.PathExists("A"))

		err := store.CreateFolder("A")
		require.Error(t, err)
		assert.Equal(t, errors.CodeAlreadyExists, errors.GetCode(err))
		assert.ErrorIs(t, err, fs.ErrExist)
	})
}

func TestStore_CreateFolder_NoIntermediateDirs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		err := store.CreateFolder("missing/child")
		require.Error(t, err)
		assert.Equal(t, errors.CodeIO, errors.GetCode(err))
		assert.False(t, store.PathExists("missing"))
	})
}

func TestStore_InvalidNames(t *testing.T) {
	store, _ := newMemoryStore(t)

	for _, name := range []string{"", ".", "..", "../escape", "a/../.."} {
		t.Run(name, func(t *testing.T) {
			err := store.CreateFolder(name)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

			err = store.RemoveFolder(name)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}

	err := store.WriteFile("A", "", []byte("x"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.False(t, store.PathExists("A"), "rejected write must not provision the folder")
}

func TestStore_RemoveFolder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		require.NoError(t, store.CreateFolder("A"))
		require.NoError(t, store.WriteFile("A", "x.bin", []byte{1}))

		require.NoError(t, store.RemoveFolder("A"))
		assert.False(t, store.PathExists(filepath.Join(root, "A")))

		err := store.RemoveFolder("A")
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestStore_RemoveFolder_RegularFile(t *testing.T) {
	store, mem := newMemoryStore(t)
	require.NoError(t, mem.WriteFile(memRoot+"/plain", []byte("x"), 0o644))

	err := store.RemoveFolder("plain")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.True(t, store.PathExists("plain"))
}

func TestStore_WriteFile_AutoProvisionsFolder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		require.False(t, store.PathExists("reports"))

		require.NoError(t, store.WriteFile("reports", "q3.bin", []byte{1, 2, 3}))
		assert.True(t, store.PathExists(filepath.Join(root, "reports")))

		res := <-store.ReadFile("reports", "q3.bin")
		require.NoError(t, res.Err)
		assert.Equal(t, []byte{1, 2, 3}, res.Data)
	})
}

// TestStore_WriteFile_Overwrite pins down that writing an existing file
// silently replaces its contents, including when the new data is shorter.
func TestStore_WriteFile_Overwrite(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		require.NoError(t, store.WriteFile("A", "x.txt", []byte("first version, long")))
		require.NoError(t, store.WriteFile("A", "x.txt", []byte("second")))

		res := <-store.ReadFile("A", "x.txt")
		require.NoError(t, res.Err)
		assert.Equal(t, "second", string(res.Data))

		require.NoError(t, store.WriteFile("A", "x.txt", nil))
		res = <-store.ReadFile("A", "x.txt")
		require.NoError(t, res.Err)
		assert.Empty(t, res.Data)
	})
}

func TestStore_WriteFile_WrapsProvisioningError(t *testing.T) {
	_, mem := newMemoryStore(t)
	store := New(WithFS(&failingFS{FS: mem, mkdirErr: fs.ErrPermission}), WithRoot(memRoot))

	err := store.WriteFile("A", "x.bin", []byte{1})
	require.Error(t, err)
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
	assert.ErrorIs(t, err, fs.ErrPermission, "the Mkdir cause must stay in the chain")

	var platformErr errors.PlatformError
	require.True(t, errors.As(err, &platformErr))
	assert.Equal(t, memRoot+"/A", platformErr.Context()["path"])
}

func TestStore_RemoveFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		err := store.RemoveFile("A", "missing.bin")
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

		require.NoError(t, store.WriteFile("A", "x.bin", []byte{1}))
		require.NoError(t, store.RemoveFile("A", "x.bin"))
		assert.False(t, store.PathExists(filepath.Join(root, "A", "x.bin")))
		assert.True(t, store.PathExists("A"), "removing a file keeps its folder")

		err = store.RemoveFile("A", "x.bin")
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestStore_ListFolders(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		folders, err := store.ListFolders()
		require.NoError(t, err)
		assert.NotNil(t, folders)
		assert.Empty(t, folders)

		require.NoError(t, store.CreateFolder("b"))
		require.NoError(t, store.CreateFolder("a"))
		require.NoError(t, store.WriteFile("c", "x.bin", []byte{1}))
		require.NoError(t, store.CreateFolder(".hidden"))
		require.NoError(t, store.CreateFolder("a/nested"))

		folders, err = store.ListFolders()
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a"),
			filepath.Join(root, "b"),
			filepath.Join(root, "c"),
		}, folders)
	})
}

func TestStore_ListFolders_Error(t *testing.T) {
	store, mem := newMemoryStore(t)
	store = New(WithFS(&failingFS{FS: mem, readDirErr: stderrors.New("disk on fire")}), WithRoot(memRoot))

	folders, err := store.ListFolders()
	require.Error(t, err)
	assert.Nil(t, folders)
	assert.Equal(t, errors.CodeList, errors.GetCode(err))
	assert.True(t, errors.IsRetryable(err))
}

func TestStore_PurgeAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		require.NoError(t, store.PurgeAll(), "purging an empty root succeeds")

		require.NoError(t, store.CreateFolder("A"))
		require.NoError(t, store.CreateFolder("B"))
		require.NoError(t, store.WriteFile("C", "x.bin", []byte{1, 2, 3}))

		folders, err := store.ListFolders()
		require.NoError(t, err)
		assert.Len(t, folders, 3)

		require.NoError(t, store.PurgeAll())

		folders, err = store.ListFolders()
		require.NoError(t, err)
		assert.Empty(t, folders)
		assert.True(t, store.PathExists(root), "purge keeps the root itself")
	})
}

func TestStore_PurgeAll_StopsAtFirstFailure(t *testing.T) {
	store, mem := newMemoryStore(t)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.CreateFolder(name))
	}

	store = New(WithFS(&failingFS{FS: mem, removeAllFail: memRoot + "/b"}), WithRoot(memRoot))

	err := store.PurgeAll()
	require.Error(t, err)
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))

	var platformErr errors.PlatformError
	require.True(t, errors.As(err, &platformErr))
	assert.Equal(t, memRoot+"/b", platformErr.Context()["path"])

	assert.False(t, store.PathExists("a"), "entries before the failure are removed")
	assert.True(t, store.PathExists("b"))
	assert.True(t, store.PathExists("c"), "entries after the failure are untouched")
}

func TestStore_PurgeAll_ListError(t *testing.T) {
	store, mem := newMemoryStore(t)
	store = New(WithFS(&failingFS{FS: mem, readDirErr: stderrors.New("nope")}), WithRoot(memRoot))

	err := store.PurgeAll()
	assert.Equal(t, errors.CodeList, errors.GetCode(err))
}

func TestStore_RenameFolder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, root string) {
		require.NoError(t, store.WriteFile("old", "x.bin", []byte{7}))
		require.NoError(t, store.CreateFolder("taken"))

		err := store.RenameFolder("missing", "new")
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

		err = store.RenameFolder("old", "taken")
		assert.Equal(t, errors.CodeAlreadyExists, errors.GetCode(err))

		require.NoError(t, store.RenameFolder("old", "new"))
		assert.False(t, store.PathExists("old"))

		res := <-store.ReadFile("new", "x.bin")
		require.NoError(t, res.Err)
		assert.Equal(t, []byte{7}, res.Data)
	})
}

func TestStore_PathExists(t *testing.T) {
	store, root := newLocalStore(t)

	assert.True(t, store.PathExists(root))
	assert.False(t, store.PathExists(filepath.Join(root, "nope")))
	assert.False(t, store.PathExists("nope"))

	require.NoError(t, os.WriteFile(filepath.Join(root, "external.txt"), []byte("x"), 0o644))
	assert.True(t, store.PathExists("external.txt"), "existence is re-queried on every call")
}

func TestStore_NoRoot(t *testing.T) {
	store := New(
		WithFS(billy.NewMemory()),
		WithRootResolver(func() (string, error) { return "", stderrors.New("no documents dir") }),
	)

	checks := map[string]error{
		"CreateFolder": store.CreateFolder("A"),
		"RemoveFolder": store.RemoveFolder("A"),
		"WriteFile":    store.WriteFile("A", "x", nil),
		"RemoveFile":   store.RemoveFile("A", "x"),
		"RenameFolder": store.RenameFolder("A", "B"),
		"PurgeAll":     store.PurgeAll(),
		"ReadFile":     (<-store.ReadFile("A", "x")).Err,
	}
	_, err := store.ListFolders()
	checks["ListFolders"] = err

	for name, err := range checks {
		assert.Equal(t, errors.CodeNoRoot, errors.GetCode(err), name)
	}
	assert.False(t, store.PathExists("A"))
	assert.True(t, errors.IsRetryable(checks["CreateFolder"]))
}

// failingFS injects failures into selected operations of a core.FS.
type failingFS struct {
	core.FS
	mkdirErr      error
	readDirErr    error
	removeAllFail string
}

func (f *failingFS) Mkdir(name string, perm fs.FileMode) error {
	if f.mkdirErr != nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: f.mkdirErr}
	}
	return f.FS.Mkdir(name, perm)
}

func (f *failingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.readDirErr != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: f.readDirErr}
	}
	return f.FS.ReadDir(name)
}

func (f *failingFS) RemoveAll(path string) error {
	if path == f.removeAllFail {
		return &fs.PathError{Op: "removeall", Path: path, Err: fs.ErrPermission}
	}
	return f.FS.RemoveAll(path)
}
