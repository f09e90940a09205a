// Copyright © 2025 The Procwatch Project.

//go:build !windows

package process

import (
	"errors"

	"golang.org/x/sys/unix"
)

// notFound reports whether a system error means the process does not exist.
func notFound(err error) bool {
	return errors.Is(err, unix.ESRCH)
}

// denied reports whether a system error means the caller lacks privilege.
func denied(err error) bool {
	return errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES)
}
