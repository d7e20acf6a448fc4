package fstest

import (
	"testing"

	"github.com/jmgilman/go/docstore/fs/core"
)

func testChrootFS(t *testing.T, filesystem core.FS, skip map[string]bool) {
	if err := filesystem.Mkdir("jail", 0o755); err != nil {
		t.Fatalf("Mkdir(jail): setup failed: %v", err)
	}

	run(t, skip, "WriteThroughChroot", func(t *testing.T) {
		jailed, err := filesystem.Chroot("jail")
		if err != nil {
			t.Fatalf("Chroot(jail): %v", err)
		}
		if err := jailed.WriteFile("inside.txt", []byte("inside"), 0o644); err != nil {
			t.Fatalf("WriteFile(inside.txt) in chroot: %v", err)
		}
		got, err := filesystem.ReadFile("jail/inside.txt")
		if err != nil || string(got) != "inside" {
			t.Errorf("ReadFile(jail/inside.txt) = %q, %v; want %q, nil", got, err, "inside")
		}
	})

	run(t, skip, "ListChrootRoot", func(t *testing.T) {
		jailed, err := filesystem.Chroot("jail")
		if err != nil {
			t.Fatalf("Chroot(jail): %v", err)
		}
		if err := jailed.Mkdir("folder", 0o755); err != nil {
			t.Fatalf("Mkdir(folder) in chroot: %v", err)
		}
		entries, err := jailed.ReadDir(".")
		if err != nil {
			t.Fatalf("ReadDir(.) in chroot: %v", err)
		}
		found := false
		for _, e := range entries {
			if e.Name() == "folder" {
				found = true
			}
		}
		if !found {
			t.Error("ReadDir(.) in chroot did not list folder")
		}
	})

	run(t, skip, "TypePreserved", func(t *testing.T) {
		jailed, err := filesystem.Chroot("jail")
		if err != nil {
			t.Fatalf("Chroot(jail): %v", err)
		}
		if jailed.Type() != filesystem.Type() {
			t.Errorf("Chroot(jail).Type() = %v, want %v", jailed.Type(), filesystem.Type())
		}
	})
}
