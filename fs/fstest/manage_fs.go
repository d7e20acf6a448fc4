package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/docstore/fs/core"
)

func testManageFS(t *testing.T, filesystem core.FS, skip map[string]bool) {
	run(t, skip, "RemoveFile", func(t *testing.T) {
		if err := filesystem.WriteFile("remove.txt", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(remove.txt): setup failed: %v", err)
		}
		if err := filesystem.Remove("remove.txt"); err != nil {
			t.Fatalf("Remove(remove.txt): %v", err)
		}
		if _, err := filesystem.Stat("remove.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(remove.txt) after Remove: got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, skip, "RemoveNotExist", func(t *testing.T) {
		err := filesystem.Remove("never-existed.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(never-existed.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, skip, "RemoveEmptyDirectory", func(t *testing.T) {
		if err := filesystem.Mkdir("emptydir", 0o755); err != nil {
			t.Fatalf("Mkdir(emptydir): setup failed: %v", err)
		}
		if err := filesystem.Remove("emptydir"); err != nil {
			t.Fatalf("Remove(emptydir): %v", err)
		}
		if ok, _ := filesystem.Exists("emptydir"); ok {
			t.Error("Exists(emptydir) after Remove = true, want false")
		}
	})

	run(t, skip, "RemoveAll", func(t *testing.T) {
		if err := filesystem.MkdirAll("tree/child", 0o755); err != nil {
			t.Fatalf("MkdirAll(tree/child): setup failed: %v", err)
		}
		if err := filesystem.WriteFile("tree/a.txt", []byte("a"), 0o644); err != nil {
			t.Fatalf("WriteFile(tree/a.txt): setup failed: %v", err)
		}
		if err := filesystem.WriteFile("tree/child/b.txt", []byte("b"), 0o644); err != nil {
			t.Fatalf("WriteFile(tree/child/b.txt): setup failed: %v", err)
		}
		if err := filesystem.RemoveAll("tree"); err != nil {
			t.Fatalf("RemoveAll(tree): %v", err)
		}
		for _, name := range []string{"tree", "tree/a.txt", "tree/child", "tree/child/b.txt"} {
			if ok, _ := filesystem.Exists(name); ok {
				t.Errorf("Exists(%s) after RemoveAll = true, want false", name)
			}
		}
	})

	run(t, skip, "RemoveAllNotExist", func(t *testing.T) {
		if err := filesystem.RemoveAll("not-there"); err != nil {
			t.Errorf("RemoveAll(not-there): got error %v, want nil", err)
		}
	})

	run(t, skip, "RenameFile", func(t *testing.T) {
		if err := filesystem.WriteFile("old.txt", []byte("moved"), 0o644); err != nil {
			t.Fatalf("WriteFile(old.txt): setup failed: %v", err)
		}
		if err := filesystem.Rename("old.txt", "new.txt"); err != nil {
			t.Fatalf("Rename(old.txt, new.txt): %v", err)
		}
		got, err := filesystem.ReadFile("new.txt")
		if err != nil || string(got) != "moved" {
			t.Errorf("ReadFile(new.txt) = %q, %v; want %q, nil", got, err, "moved")
		}
		if ok, _ := filesystem.Exists("old.txt"); ok {
			t.Error("Exists(old.txt) after Rename = true, want false")
		}
	})

	run(t, skip, "RenameDirectory", func(t *testing.T) {
		if err := filesystem.Mkdir("olddir", 0o755); err != nil {
			t.Fatalf("Mkdir(olddir): setup failed: %v", err)
		}
		if err := filesystem.WriteFile("olddir/f.txt", []byte("f"), 0o644); err != nil {
			t.Fatalf("WriteFile(olddir/f.txt): setup failed: %v", err)
		}
		if err := filesystem.Rename("olddir", "newdir"); err != nil {
			t.Fatalf("Rename(olddir, newdir): %v", err)
		}
		got, err := filesystem.ReadFile("newdir/f.txt")
		if err != nil || string(got) != "f" {
			t.Errorf("ReadFile(newdir/f.txt) = %q, %v; want %q, nil", got, err, "f")
		}
		if ok, _ := filesystem.Exists("olddir"); ok {
			t.Error("Exists(olddir) after Rename = true, want false")
		}
	})
}
