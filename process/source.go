// Copyright © 2025 The Procwatch Project.

package process

import (
	"context"
)

type (
	// Lookup is the result of reading one process of a snapshot: either a Record or a failure.
	Lookup struct {
		Record Record
		Err    error
	}

	// Source enumerates, reads, and signals the processes of the host.
	Source interface {
		// List reads fields of every visible process. A per-process failure is reported in its
		// Lookup; an error is returned only when the process table cannot be enumerated.
		List(ctx context.Context, fields []Field) ([]Lookup, error)

		// Get reads fields of one process, or returns ErrNotFound.
		Get(ctx context.Context, pid Pid, fields []Field) (Record, error)

		// Terminate requests that a process exit, returning ErrNotFound or ErrAccessDenied.
		Terminate(ctx context.Context, pid Pid) error
	}
)
