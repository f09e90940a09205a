// Copyright © 2025 The Procwatch Project.

package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/zosmac/procwatch/process"
)

// Menu reads choices from its input and writes results to its output.
type Menu struct {
	sampler *process.Sampler
	manager *process.Manager
	in      *bufio.Scanner
	out     io.Writer
}

// New creates a Menu over a process Source.
func New(source process.Source, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		sampler: process.NewSampler(source),
		manager: process.NewManager(source),
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run presents the menu until the user quits, the input ends, or ctx is cancelled.
// Per-process failures are reported and the menu stays available.
func (m *Menu) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		fmt.Fprint(m.out, "\n===== ProcWatch Menu =====\n"+
			"1. List all processes\n"+
			"2. Inspect a process by PID\n"+
			"3. Terminate a process by PID\n"+
			"q. Quit\n")
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return m.in.Err()
		}

		switch strings.ToLower(choice) {
		case "1":
			m.list(ctx)
		case "2":
			if pid, ok := m.pid("Enter the PID to inspect: "); ok {
				m.inspect(ctx, pid)
			}
		case "3":
			if pid, ok := m.pid("Enter the PID to terminate: "); ok {
				m.terminate(ctx, pid)
			}
		case "q":
			fmt.Fprintln(m.out, "Exiting ProcWatch.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
	return ctx.Err()
}

// prompt writes a prompt and reads a line of input.
func (m *Menu) prompt(p string) (string, bool) {
	fmt.Fprint(m.out, p)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// pid prompts for a pid, reporting input that is not a valid pid.
func (m *Menu) pid(p string) (process.Pid, bool) {
	s, ok := m.prompt(p)
	if !ok {
		return 0, false
	}
	pid, err := process.ParsePid(s)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid PID. Please enter a number.")
		return 0, false
	}
	return pid, true
}

func (m *Menu) list(ctx context.Context) {
	rs, err := m.sampler.Sample(ctx, process.ListFields...)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(m.out, "%7s %5s %5s %-30s\n", "PID", "%CPU", "%MEM", "Name")
	fmt.Fprintln(m.out, strings.Repeat("-", 50))
	for _, r := range rs {
		fmt.Fprintf(m.out, "%7d %5.1f %5.1f %-30s\n", r.Pid, r.CPUPercent, r.MemoryPercent, r.Name)
	}
}

func (m *Menu) inspect(ctx context.Context, pid process.Pid) {
	r, err := m.manager.Inspect(ctx, pid)
	if err != nil {
		m.failed(pid, err)
		return
	}

	fmt.Fprintf(m.out, "\n--- Detailed Process Information ---\n"+
		"  PID: %d\n"+
		"  Name: %s\n"+
		"  Status: %s\n"+
		"  CPU Usage: %.1f%%\n"+
		"  Memory Info: %.2f MB (%s)\n"+
		"  Username: %s\n"+
		"  Executable: %s\n"+
		"------------------------------------\n",
		r.Pid,
		r.Name,
		r.Status,
		r.CPUPercent,
		r.MemoryMB,
		size(r.MemoryMB),
		r.Username,
		r.Exe,
	)
}

func (m *Menu) terminate(ctx context.Context, pid process.Pid) {
	name, err := m.manager.Terminate(ctx, pid)
	if err != nil {
		m.failed(pid, err)
		return
	}
	fmt.Fprintf(m.out, "Success: Sent termination signal to process %d (%s).\n", pid, name)
}

// failed reports a per-process failure on one line.
func (m *Menu) failed(pid process.Pid, err error) {
	switch {
	case errors.Is(err, process.ErrNotFound):
		fmt.Fprintf(m.out, "Error: No process with PID %d found.\n", pid)
	case errors.Is(err, process.ErrAccessDenied):
		fmt.Fprintf(m.out, "Error: Access denied to process %d. You may need elevated privileges.\n", pid)
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

// size formats mebibytes in human readable units.
func size(mb float64) string {
	return datasize.ByteSize(mb * float64(datasize.MB)).HumanReadable()
}
