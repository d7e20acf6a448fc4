// Package pathutil provides path normalization and manipulation utilities
// for MinIO/S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// Normalize cleans a path, converts backslashes to forward slashes and trims
// leading and trailing slashes. It returns "." for the root.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// NormalizePrefix normalizes a key prefix. The root prefix is "".
func NormalizePrefix(prefix string) string {
	p := Normalize(prefix)
	if p == "." {
		return ""
	}
	return p
}

// JoinPath joins a prefix with a name to create a full S3 key.
// The result never ends in "/"; it is "" for the root of an unprefixed bucket.
func JoinPath(prefix, name string) string {
	name = Normalize(name)
	if name == "." {
		return prefix
	}
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// DirKey returns the marker key for a directory key: key with a trailing
// slash, or "" for the bucket root.
func DirKey(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

// Parent returns the parent of a normalized name, or "." for top-level
// entries.
func Parent(name string) string {
	name = Normalize(name)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i]
	}
	return "."
}

// Base returns the last element of a normalized name.
func Base(name string) string {
	name = Normalize(name)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
