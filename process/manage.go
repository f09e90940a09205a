// Copyright © 2025 The Procwatch Project.

package process

import (
	"context"
)

// Manager inspects and terminates individual processes.
type Manager struct {
	source Source
}

// NewManager creates a Manager for a Source.
func NewManager(source Source) *Manager {
	return &Manager{source: source}
}

// Inspect reads all fields of a process.
func (m *Manager) Inspect(ctx context.Context, pid Pid) (Record, error) {
	r, err := m.source.Get(ctx, pid, AllFields)
	if err != nil {
		return Record{}, &Error{Op: "inspect", Pid: pid, Err: err}
	}
	return r, nil
}

// Terminate sends a termination request to a process and returns its name.
// It does not wait for the process to exit.
func (m *Manager) Terminate(ctx context.Context, pid Pid) (string, error) {
	r, err := m.source.Get(ctx, pid, []Field{FieldPid, FieldName})
	if err != nil {
		return "", &Error{Op: "terminate", Pid: pid, Err: err}
	}
	if err := m.source.Terminate(ctx, pid); err != nil {
		return "", &Error{Op: "terminate", Pid: pid, Err: err}
	}
	return r.Name, nil
}
