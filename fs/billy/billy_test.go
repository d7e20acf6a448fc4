package billy

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/docstore/fs/core"
	"github.com/jmgilman/go/docstore/fs/fstest"
)

// TestLocalFS_Conformance runs the conformance suite against a LocalFS
// chrooted into a temporary directory.
func TestLocalFS_Conformance(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) core.FS {
		fs, err := NewLocal().Chroot(t.TempDir())
		if err != nil {
			t.Fatalf("Chroot(TempDir): %v", err)
		}
		return fs
	})
}

// TestMemoryFS_Conformance runs the conformance suite against a MemoryFS.
func TestMemoryFS_Conformance(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) core.FS {
		return NewMemory()
	})
}

// TestLocalFS_Type verifies LocalFS returns FSTypeLocal.
func TestLocalFS_Type(t *testing.T) {
	fs := NewLocal()
	if fs.Type() != core.FSTypeLocal {
		t.Errorf("LocalFS.Type() = %v (%s), want %v", fs.Type(), fs.Type().String(), core.FSTypeLocal)
	}
}

// TestMemoryFS_Type verifies MemoryFS returns FSTypeMemory.
func TestMemoryFS_Type(t *testing.T) {
	fs := NewMemory()
	if fs.Type() != core.FSTypeMemory {
		t.Errorf("MemoryFS.Type() = %v (%s), want %v", fs.Type(), fs.Type().String(), core.FSTypeMemory)
	}
}

// TestMemoryFS_Unwrap verifies Unwrap returns a usable billy.Filesystem.
func TestMemoryFS_Unwrap(t *testing.T) {
	fs := NewMemory()
	bfs := fs.Unwrap()
	if bfs == nil {
		t.Fatal("Unwrap() returned nil")
	}

	f, err := bfs.Create("direct.txt")
	if err != nil {
		t.Fatalf("Create on unwrapped filesystem: %v", err)
	}
	_ = f.Close()

	if ok, err := fs.Exists("direct.txt"); err != nil || !ok {
		t.Errorf("Exists(direct.txt) = %v, %v; want true, nil", ok, err)
	}
}

// TestLocalFS_WithBaseDir verifies paths resolve relative to the base dir.
func TestLocalFS_WithBaseDir(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocal(WithBaseDir(dir))

	if err := fs.Mkdir("docs", 0o755); err != nil {
		t.Fatalf("Mkdir(docs): %v", err)
	}
	if err := fs.WriteFile("docs/a.txt", []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile(docs/a.txt): %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "docs", "a.txt"))
	if err != nil {
		t.Fatalf("os.ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("file content = %q, want %q", got, "hello")
	}
}

// TestLocalFS_AbsolutePaths verifies the default LocalFS accepts absolute paths.
func TestLocalFS_AbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocal()

	target := filepath.Join(dir, "abs")
	if err := fs.Mkdir(target, 0o755); err != nil {
		t.Fatalf("Mkdir(%s): %v", target, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("os.Stat(%s): %v", target, err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", target)
	}
}

// TestMkdir_Errors verifies Mkdir refuses existing paths and missing parents.
func TestMkdir_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, fs core.FS)
		path    string
		wantErr error
	}{
		{
			name: "existing directory",
			setup: func(t *testing.T, fs core.FS) {
				if err := fs.Mkdir("dir", 0o755); err != nil {
					t.Fatalf("setup: %v", err)
				}
			},
			path:    "dir",
			wantErr: iofs.ErrExist,
		},
		{
			name: "existing file",
			setup: func(t *testing.T, fs core.FS) {
				if err := fs.WriteFile("file", []byte("x"), 0o644); err != nil {
					t.Fatalf("setup: %v", err)
				}
			},
			path:    "file",
			wantErr: iofs.ErrExist,
		},
		{
			name:    "missing parent",
			setup:   func(*testing.T, core.FS) {},
			path:    "missing/child",
			wantErr: iofs.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewMemory()
			tt.setup(t, fs)

			err := fs.Mkdir(tt.path, 0o755)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Mkdir(%s) error = %v, want %v", tt.path, err, tt.wantErr)
			}
			var pathErr *iofs.PathError
			if !errors.As(err, &pathErr) {
				t.Errorf("Mkdir(%s) error %T is not *fs.PathError", tt.path, err)
			}
		})
	}
}

// TestOpenFile_ParentNotDirectory verifies creating a file under a regular
// file fails instead of silently succeeding.
func TestOpenFile_ParentNotDirectory(t *testing.T) {
	fs := NewMemory()
	if err := fs.WriteFile("plain", []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fs.WriteFile("plain/child.txt", []byte("y"), 0o644); err == nil {
		t.Error("WriteFile(plain/child.txt) succeeded, want error")
	}
}

// TestRemove_NonEmptyDirectory verifies Remove refuses to delete a populated
// directory while RemoveAll succeeds.
func TestRemove_NonEmptyDirectory(t *testing.T) {
	for name, fs := range map[string]core.FS{
		"memory": NewMemory(),
		"local":  mustChroot(t, NewLocal(), t.TempDir()),
	} {
		t.Run(name, func(t *testing.T) {
			if err := fs.Mkdir("full", 0o755); err != nil {
				t.Fatalf("setup: %v", err)
			}
			if err := fs.WriteFile("full/a.txt", []byte("a"), 0o644); err != nil {
				t.Fatalf("setup: %v", err)
			}

			if err := fs.Remove("full"); err == nil {
				t.Error("Remove(full) succeeded on a non-empty directory")
			}
			if err := fs.RemoveAll("full"); err != nil {
				t.Fatalf("RemoveAll(full): %v", err)
			}
			if ok, _ := fs.Exists("full"); ok {
				t.Error("Exists(full) after RemoveAll = true, want false")
			}
		})
	}
}

func mustChroot(t *testing.T, fs core.FS, dir string) core.FS {
	t.Helper()
	chrooted, err := fs.Chroot(dir)
	if err != nil {
		t.Fatalf("Chroot(%s): %v", dir, err)
	}
	return chrooted
}
