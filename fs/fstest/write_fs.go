package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/docstore/fs/core"
)

func testWriteFS(t *testing.T, filesystem core.FS, skip map[string]bool) {
	run(t, skip, "WriteFileOverwrite", func(t *testing.T) {
		if err := filesystem.WriteFile("overwrite.txt", []byte("a much longer first version"), 0o644); err != nil {
			t.Fatalf("WriteFile(overwrite.txt): %v", err)
		}
		if err := filesystem.WriteFile("overwrite.txt", []byte("short"), 0o644); err != nil {
			t.Fatalf("WriteFile(overwrite.txt) second time: %v", err)
		}
		got, err := filesystem.ReadFile("overwrite.txt")
		if err != nil {
			t.Fatalf("ReadFile(overwrite.txt): %v", err)
		}
		if string(got) != "short" {
			t.Errorf("ReadFile(overwrite.txt) = %q, want %q", got, "short")
		}
	})

	run(t, skip, "WriteFileMissingParent", func(t *testing.T) {
		err := filesystem.WriteFile("nodir/file.txt", []byte("x"), 0o644)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("WriteFile(nodir/file.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, skip, "Create", func(t *testing.T) {
		f, err := filesystem.Create("created.txt")
		if err != nil {
			t.Fatalf("Create(created.txt): %v", err)
		}
		if _, err := f.Write([]byte("created")); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		got, err := filesystem.ReadFile("created.txt")
		if err != nil {
			t.Fatalf("ReadFile(created.txt): %v", err)
		}
		if !bytes.Equal(got, []byte("created")) {
			t.Errorf("ReadFile(created.txt) = %q, want %q", got, "created")
		}
	})

	run(t, skip, "Mkdir", func(t *testing.T) {
		if err := filesystem.Mkdir("newdir", 0o755); err != nil {
			t.Fatalf("Mkdir(newdir): %v", err)
		}
		info, err := filesystem.Stat("newdir")
		if err != nil {
			t.Fatalf("Stat(newdir): %v", err)
		}
		if !info.IsDir() {
			t.Error("Stat(newdir).IsDir() = false, want true")
		}
	})

	run(t, skip, "MkdirExisting", func(t *testing.T) {
		if err := filesystem.Mkdir("twice", 0o755); err != nil {
			t.Fatalf("Mkdir(twice): %v", err)
		}
		err := filesystem.Mkdir("twice", 0o755)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("Mkdir(twice) second time: got error %v, want fs.ErrExist", err)
		}
	})

	run(t, skip, "MkdirMissingParent", func(t *testing.T) {
		err := filesystem.Mkdir("missing/child", 0o755)
		if err == nil {
			t.Error("Mkdir(missing/child): got nil error, want failure")
		}
		if ok, _ := filesystem.Exists("missing"); ok {
			t.Error("Mkdir(missing/child) created the parent directory")
		}
	})

	run(t, skip, "MkdirAll", func(t *testing.T) {
		if err := filesystem.MkdirAll("deep/er/est", 0o755); err != nil {
			t.Fatalf("MkdirAll(deep/er/est): %v", err)
		}
		if err := filesystem.MkdirAll("deep/er/est", 0o755); err != nil {
			t.Errorf("MkdirAll(deep/er/est) second time: %v", err)
		}
		if ok, err := filesystem.Exists("deep/er/est"); err != nil || !ok {
			t.Errorf("Exists(deep/er/est) = %v, %v; want true, nil", ok, err)
		}
	})
}
