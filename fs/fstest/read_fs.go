package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/docstore/fs/core"
)

func testReadFS(t *testing.T, filesystem core.FS, skip map[string]bool) {
	if err := filesystem.Mkdir("read", 0o755); err != nil {
		t.Fatalf("Mkdir(read): setup failed: %v", err)
	}
	content := []byte("read test content")
	if err := filesystem.WriteFile("read/file.txt", content, 0o644); err != nil {
		t.Fatalf("WriteFile(read/file.txt): setup failed: %v", err)
	}

	run(t, skip, "ReadFile", func(t *testing.T) {
		got, err := filesystem.ReadFile("read/file.txt")
		if err != nil {
			t.Fatalf("ReadFile(read/file.txt): %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("ReadFile(read/file.txt) = %q, want %q", got, content)
		}
	})

	run(t, skip, "ReadFileNotExist", func(t *testing.T) {
		_, err := filesystem.ReadFile("read/missing.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadFile(read/missing.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, skip, "Open", func(t *testing.T) {
		f, err := filesystem.Open("read/file.txt")
		if err != nil {
			t.Fatalf("Open(read/file.txt): %v", err)
		}
		defer func() { _ = f.Close() }()
		got, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("Open(read/file.txt) content = %q, want %q", got, content)
		}
	})

	run(t, skip, "StatFile", func(t *testing.T) {
		info, err := filesystem.Stat("read/file.txt")
		if err != nil {
			t.Fatalf("Stat(read/file.txt): %v", err)
		}
		if info.IsDir() {
			t.Error("Stat(read/file.txt).IsDir() = true, want false")
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Stat(read/file.txt).Size() = %d, want %d", info.Size(), len(content))
		}
	})

	run(t, skip, "StatDir", func(t *testing.T) {
		info, err := filesystem.Stat("read")
		if err != nil {
			t.Fatalf("Stat(read): %v", err)
		}
		if !info.IsDir() {
			t.Error("Stat(read).IsDir() = false, want true")
		}
	})

	run(t, skip, "ReadDirSorted", func(t *testing.T) {
		for _, name := range []string{"read/b.txt", "read/a.txt"} {
			if err := filesystem.WriteFile(name, []byte("x"), 0o644); err != nil {
				t.Fatalf("WriteFile(%s): %v", name, err)
			}
		}
		if err := filesystem.Mkdir("read/sub", 0o755); err != nil {
			t.Fatalf("Mkdir(read/sub): %v", err)
		}

		entries, err := filesystem.ReadDir("read")
		if err != nil {
			t.Fatalf("ReadDir(read): %v", err)
		}
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		want := []string{"a.txt", "b.txt", "file.txt", "sub"}
		if len(names) != len(want) {
			t.Fatalf("ReadDir(read) = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("ReadDir(read)[%d] = %q, want %q", i, names[i], want[i])
			}
		}
		if !entries[3].IsDir() {
			t.Error("ReadDir(read): sub should be a directory")
		}
	})

	run(t, skip, "ReadDirRoot", func(t *testing.T) {
		entries, err := filesystem.ReadDir(".")
		if err != nil {
			t.Fatalf("ReadDir(.): %v", err)
		}
		found := false
		for _, e := range entries {
			if e.Name() == "read" && e.IsDir() {
				found = true
			}
		}
		if !found {
			t.Errorf("ReadDir(.) did not report directory %q", "read")
		}
	})

	run(t, skip, "Exists", func(t *testing.T) {
		tests := []struct {
			name string
			want bool
		}{
			{"read", true},
			{"read/file.txt", true},
			{"read/missing.txt", false},
			{"missing", false},
		}
		for _, tt := range tests {
			got, err := filesystem.Exists(tt.name)
			if err != nil {
				t.Errorf("Exists(%s): unexpected error %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Exists(%s) = %v, want %v", tt.name, got, tt.want)
			}
		}
	})
}
