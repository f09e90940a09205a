// Copyright © 2025 The Procwatch Project.

// Package processtest provides an in-memory process.Source for tests.
package processtest

import (
	"context"
	"slices"
	"sync"

	"github.com/zosmac/procwatch/process"
)

// Source is a scripted process table.
type Source struct {
	// Procs is the process table in snapshot order.
	Procs []process.Record
	// Failures makes lookups of a pid fail with the error.
	Failures map[process.Pid]error
	// Denied pids refuse termination.
	Denied map[process.Pid]bool
	// ListErr fails enumeration of the table.
	ListErr error

	// Lists counts List calls.
	Lists int
	// Terminated records the pids that were sent a termination request.
	Terminated []process.Pid

	lock sync.Mutex
}

// New creates a Source with a process table.
func New(procs ...process.Record) *Source {
	return &Source{
		Procs:    procs,
		Failures: map[process.Pid]error{},
		Denied:   map[process.Pid]bool{},
	}
}

// List implements process.Source.
func (s *Source) List(_ context.Context, fields []process.Field) ([]process.Lookup, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.Lists++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	ls := make([]process.Lookup, len(s.Procs))
	for i, r := range s.Procs {
		if err, ok := s.Failures[r.Pid]; ok {
			ls[i] = process.Lookup{Err: err}
			continue
		}
		ls[i] = process.Lookup{Record: project(r, fields)}
	}
	return ls, nil
}

// Get implements process.Source.
func (s *Source) Get(_ context.Context, pid process.Pid, fields []process.Field) (process.Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, ok := s.find(pid)
	if !ok {
		return process.Record{}, process.ErrNotFound
	}
	if err, ok := s.Failures[pid]; ok {
		return process.Record{}, err
	}
	return project(r, fields), nil
}

// Terminate implements process.Source.
func (s *Source) Terminate(_ context.Context, pid process.Pid) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.find(pid); !ok {
		return process.ErrNotFound
	}
	if s.Denied[pid] {
		return process.ErrAccessDenied
	}
	s.Terminated = append(s.Terminated, pid)
	return nil
}

func (s *Source) find(pid process.Pid) (process.Record, bool) {
	i := slices.IndexFunc(s.Procs, func(r process.Record) bool { return r.Pid == pid })
	if i < 0 {
		return process.Record{}, false
	}
	return s.Procs[i], true
}

// project copies only the requested fields of a record.
func project(r process.Record, fields []process.Field) process.Record {
	p := process.Record{Pid: r.Pid}
	for _, f := range fields {
		switch f {
		case process.FieldName:
			p.Name = r.Name
		case process.FieldCPU:
			p.CPUPercent = r.CPUPercent
		case process.FieldMemory:
			p.MemoryMB = r.MemoryMB
		case process.FieldMemoryPercent:
			p.MemoryPercent = r.MemoryPercent
		case process.FieldUsername:
			p.Username = r.Username
		case process.FieldStatus:
			p.Status = r.Status
		case process.FieldExe:
			p.Exe = r.Exe
		}
	}
	return p
}
