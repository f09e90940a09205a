// Copyright © 2025 The Procwatch Project.

package process

import (
	"errors"

	"golang.org/x/sys/windows"
)

// notFound reports whether a system error means the process does not exist.
// OpenProcess reports a stale pid as an invalid parameter.
func notFound(err error) bool {
	return errors.Is(err, windows.ERROR_INVALID_PARAMETER) || errors.Is(err, windows.ERROR_NOT_FOUND)
}

// denied reports whether a system error means the caller lacks privilege.
func denied(err error) bool {
	return errors.Is(err, windows.ERROR_ACCESS_DENIED)
}
