// Copyright © 2025 The Procwatch Project.

package process

type (
	// kind is a per-process failure. Every kind matches ErrUnavailable.
	kind struct {
		s string
	}

	// Error reports the failure of an operation on a single process.
	Error struct {
		Op  string
		Pid Pid
		Err error
	}
)

var (
	// ErrUnavailable matches any failure to read or signal one process.
	ErrUnavailable error = &kind{"process unavailable"}

	// ErrNotFound reports that a pid does not identify a live process.
	ErrNotFound error = &kind{"no such process"}

	// ErrAccessDenied reports that the caller lacks privilege for the process.
	ErrAccessDenied error = &kind{"access denied"}

	// ErrZombie reports a process that has exited but not been reaped.
	ErrZombie error = &kind{"zombie process"}
)

// Error method to comply with error interface.
func (k *kind) Error() string {
	return k.s
}

// Is reports all kinds as ErrUnavailable.
func (k *kind) Is(target error) bool {
	return target == ErrUnavailable
}

// Error method to comply with error interface.
func (err *Error) Error() string {
	return err.Op + " " + err.Pid.String() + ": " + err.Err.Error()
}

// Unwrap method to comply with error interface.
func (err *Error) Unwrap() error {
	return err.Err
}
