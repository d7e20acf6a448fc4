package core

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	ErrPermission = fs.ErrPermission

	// ErrClosed is returned when an operation is performed on a closed file.
	ErrClosed = fs.ErrClosed

	// ErrUnsupported is returned when an operation is not supported by the provider.
	// It is the standard library sentinel, so errors.Is works across packages.
	ErrUnsupported = errors.ErrUnsupported

	// ErrNotEmpty is returned when removing a directory that still has children.
	ErrNotEmpty = errors.New("directory not empty")
)
