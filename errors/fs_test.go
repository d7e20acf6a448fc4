package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, CodeUnknown},
		{"not exist", fs.ErrNotExist, CodeNotFound},
		{"path error not exist", &fs.PathError{Op: "remove", Path: "a", Err: fs.ErrNotExist}, CodeNotFound},
		{"exist", fs.ErrExist, CodeAlreadyExists},
		{"permission", fs.ErrPermission, CodePermission},
		{"unsupported", stderrors.ErrUnsupported, CodeUnsupported},
		{"anything else", stderrors.New("disk on fire"), CodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CodeFor(tt.err))
		})
	}
}

func TestFromFS(t *testing.T) {
	require.Nil(t, FromFS(nil, "x"))

	err := FromFS(&fs.PathError{Op: "remove", Path: "a/b", Err: fs.ErrNotExist}, "failed to remove file")
	require.Equal(t, CodeNotFound, err.Code())
	require.True(t, stderrors.Is(err, fs.ErrNotExist))

	inner := New(CodeNoRoot, "no root")
	err = FromFS(inner, "outer")
	require.Equal(t, CodeNoRoot, err.Code())
	require.Equal(t, "outer", err.Message())
}
