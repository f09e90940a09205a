// Copyright © 2025 The Procwatch Project.

package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "not running", err: process.ErrorProcessNotRunning, want: ErrNotFound},
		{name: "missing proc file", err: &fs.PathError{Op: "open", Path: "/proc/1/stat", Err: fs.ErrNotExist}, want: ErrNotFound},
		{name: "permission", err: &fs.PathError{Op: "readlink", Path: "/proc/1/exe", Err: os.ErrPermission}, want: ErrAccessDenied},
		{name: "already classified", err: ErrZombie, want: ErrZombie},
		{name: "other", err: errors.New("bad format"), want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestIdentity(t *testing.T) {
	fs, err := identity([]Field{FieldCPU, FieldName, FieldCPU})
	assert.NoError(t, err)
	assert.Equal(t, []Field{FieldPid, FieldName, FieldCPU}, fs)

	_, err = identity([]Field{"threads"})
	assert.EqualError(t, err, fmt.Sprintf("unknown field %q", "threads"))
}
