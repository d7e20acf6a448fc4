// Package fstest provides a conformance test suite for core.FS providers.
//
// The suite checks the POSIX-like contract docstore depends on: explicit
// directories, single-level Mkdir that refuses existing paths, writes that
// require an existing parent, and Remove that reports missing paths.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) core.FS {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/go/docstore/fs/core"
)

// NewFS returns a fresh, empty filesystem for one test group.
type NewFS func(t *testing.T) core.FS

// TestSuite runs every conformance group against filesystems built by newFS.
// Each group gets its own filesystem.
func TestSuite(t *testing.T, newFS NewFS) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs the conformance groups, skipping the named ones
// (e.g. "ManageFS" or "WriteFS/MkdirMissingParent").
func TestSuiteWithSkip(t *testing.T, newFS NewFS, skipTests []string) {
	skip := make(map[string]bool, len(skipTests))
	for _, name := range skipTests {
		skip[name] = true
	}

	groups := []struct {
		name string
		run  func(t *testing.T, filesystem core.FS, skip map[string]bool)
	}{
		{"ReadFS", testReadFS},
		{"WriteFS", testWriteFS},
		{"ManageFS", testManageFS},
		{"ChrootFS", testChrootFS},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if skip[g.name] {
				t.Skip("Skipped by provider configuration")
			}
			g.run(t, newFS(t), prefixed(skip, g.name))
		})
	}
}

// prefixed returns the subtest names under group that should be skipped.
func prefixed(skip map[string]bool, group string) map[string]bool {
	out := make(map[string]bool)
	for name := range skip {
		if len(name) > len(group)+1 && name[:len(group)+1] == group+"/" {
			out[name[len(group)+1:]] = true
		}
	}
	return out
}

// run executes fn as a subtest unless it is listed in skip.
func run(t *testing.T, skip map[string]bool, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if skip[name] {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}
