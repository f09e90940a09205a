// Copyright © 2025 The Procwatch Project.

package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/zosmac/gocore"
)

type (
	// Table is the Source for the host's process table.
	Table struct {
		// interval is the CPU measurement interval for Get.
		interval time.Duration

		// procs caches process handles so that CPU usage is measured since the previous List.
		procs map[Pid]*handle
		lock  sync.Mutex
	}

	// handle pairs a process with its start time to detect pid reuse.
	handle struct {
		proc    *process.Process
		created int64
	}
)

// NewTable creates a Source for the host's process table. Get measures CPU usage over interval.
func NewTable(interval time.Duration) *Table {
	return &Table{
		interval: interval,
		procs:    map[Pid]*handle{},
	}
}

// List reads fields of every process. CPU usage is measured since the prior List,
// so the first List reports zero for processes not seen before.
func (t *Table) List(ctx context.Context, fields []Field) ([]Lookup, error) {
	ps, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, gocore.Error("Processes", err)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	procs := make(map[Pid]*handle, len(ps))
	ls := make([]Lookup, 0, len(ps))
	for _, p := range ps {
		h := t.cached(ctx, p)
		procs[Pid(p.Pid)] = h
		var r Record
		err := read(ctx, h.proc, &r, fields, 0, false)
		ls = append(ls, Lookup{Record: r, Err: err})
	}
	t.procs = procs // forget exited processes

	return ls, nil
}

// Get reads fields of one process. Username and executable are left empty if they cannot be read.
func (t *Table) Get(ctx context.Context, pid Pid, fields []Field) (Record, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return Record{}, classify(err)
	}
	var r Record
	if err := read(ctx, p, &r, fields, t.interval, true); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Terminate sends SIGTERM (TerminateProcess on Windows) to a process.
func (t *Table) Terminate(ctx context.Context, pid Pid) error {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return classify(err)
	}
	return classify(p.TerminateWithContext(ctx))
}

// cached returns the cached handle for a process unless its pid has been reused.
func (t *Table) cached(ctx context.Context, p *process.Process) *handle {
	created, _ := p.CreateTimeWithContext(ctx)
	if h, ok := t.procs[Pid(p.Pid)]; ok && h.created == created {
		return h
	}
	return &handle{proc: p, created: created}
}

// read populates a record with the requested fields, failing on the first field that cannot be read.
// If lenient, a username or executable that cannot be read is left empty.
func read(ctx context.Context, p *process.Process, r *Record, fields []Field, interval time.Duration, lenient bool) error {
	r.Pid = Pid(p.Pid)

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return classify(err)
	}
	r.Name = name

	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return classify(err)
	}
	if slices.Contains(status, process.Zombie) {
		return ErrZombie
	}

	for _, f := range fields {
		switch f {
		case FieldCPU:
			r.CPUPercent, err = p.PercentWithContext(ctx, interval)
		case FieldMemory:
			var mi *process.MemoryInfoStat
			if mi, err = p.MemoryInfoWithContext(ctx); err == nil {
				r.MemoryMB = datasize.ByteSize(mi.RSS).MBytes()
			}
		case FieldMemoryPercent:
			var mp float32
			mp, err = p.MemoryPercentWithContext(ctx)
			r.MemoryPercent = float64(mp)
		case FieldUsername:
			r.Username, err = username(ctx, p)
		case FieldStatus:
			r.Status = strings.Join(status, ",")
		case FieldExe:
			r.Exe, err = p.ExeWithContext(ctx)
		}
		if err != nil {
			if lenient && (f == FieldUsername || f == FieldExe) {
				err = nil
				continue
			}
			return classify(err)
		}
	}

	return nil
}

// username reports the owner of a process, falling back to the uid when it has no account entry.
func username(ctx context.Context, p *process.Process) (string, error) {
	name, err := p.UsernameWithContext(ctx)
	if err == nil {
		return name, nil
	}
	uids, uerr := p.UidsWithContext(ctx)
	if uerr != nil || len(uids) == 0 {
		return "", err
	}
	return gocore.Username(int(uids[0])), nil
}

// classify maps gopsutil and system errors to the process error kinds.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, os.ErrNotExist),
		notFound(err):
		return ErrNotFound
	case errors.Is(err, os.ErrPermission),
		denied(err):
		return ErrAccessDenied
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
