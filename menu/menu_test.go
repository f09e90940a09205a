// Copyright © 2025 The Procwatch Project.

package menu_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/procwatch/menu"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/process/processtest"
)

func source() *processtest.Source {
	src := processtest.New(
		process.Record{
			Pid:           1,
			Name:          "init",
			CPUPercent:    0.5,
			MemoryMB:      12,
			MemoryPercent: 0.1,
			Username:      "root",
			Status:        "sleep",
			Exe:           "/sbin/init",
		},
		process.Record{Pid: 42, Name: "postgres", CPUPercent: 30, MemoryMB: 256, MemoryPercent: 3.2},
		process.Record{Pid: 57, Name: "defunct"},
	)
	src.Failures[57] = process.ErrZombie
	src.Denied[1] = true
	return src
}

func run(t *testing.T, src *processtest.Source, input ...string) string {
	t.Helper()
	var out bytes.Buffer
	m := menu.New(src, strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	require.NoError(t, m.Run(context.Background()))
	return out.String()
}

func TestMenu(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		contains []string
		excludes []string
	}{
		{
			name:     "quit",
			input:    []string{"q"},
			contains: []string{"Exiting ProcWatch."},
		},
		{
			name:     "quit upper case",
			input:    []string{"Q"},
			contains: []string{"Exiting ProcWatch."},
		},
		{
			name:     "list drops failed lookups",
			input:    []string{"1", "q"},
			contains: []string{"PID  %CPU  %MEM Name", "     42  30.0   3.2 postgres", "      1   0.5   0.1 init"},
			excludes: []string{"defunct"},
		},
		{
			name:  "inspect",
			input: []string{"2", "1", "q"},
			contains: []string{
				"--- Detailed Process Information ---",
				"  PID: 1\n",
				"  Name: init\n",
				"  Status: sleep\n",
				"  Memory Info: 12.00 MB",
				"  Username: root\n",
				"  Executable: /sbin/init\n",
			},
		},
		{
			name:     "inspect missing",
			input:    []string{"2", "999", "q"},
			contains: []string{"Error: No process with PID 999 found."},
		},
		{
			name:     "inspect zombie",
			input:    []string{"2", "57", "q"},
			contains: []string{"Error: inspect 57: zombie process"},
		},
		{
			name:     "invalid pid",
			input:    []string{"2", "abc", "3", "-4", "q"},
			contains: []string{"Invalid PID. Please enter a number."},
		},
		{
			name:     "invalid choice",
			input:    []string{"7", "q"},
			contains: []string{"Invalid choice. Please try again.", "Exiting ProcWatch."},
		},
		{
			name:     "terminate",
			input:    []string{"3", "42", "q"},
			contains: []string{"Success: Sent termination signal to process 42 (postgres)."},
		},
		{
			name:     "terminate denied",
			input:    []string{"3", "1", "q"},
			contains: []string{"Error: Access denied to process 1."},
		},
		{
			name:     "terminate missing",
			input:    []string{"3", "999", "q"},
			contains: []string{"Error: No process with PID 999 found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, source(), tt.input...)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestMenuTerminateSendsOneRequest(t *testing.T) {
	src := source()
	run(t, src, "3", "42", "3", "999", "3", "1", "q")
	assert.Equal(t, []process.Pid{42}, src.Terminated)
}

func TestMenuInvalidPidCountsOnce(t *testing.T) {
	out := run(t, source(), "2", "abc", "q")
	assert.Equal(t, 1, strings.Count(out, "Invalid PID. Please enter a number."))
	assert.Equal(t, 2, strings.Count(out, "Enter your choice: "))
}

func TestMenuEndOfInput(t *testing.T) {
	var out bytes.Buffer
	m := menu.New(source(), strings.NewReader(""), &out)
	assert.NoError(t, m.Run(context.Background()))
	assert.NotContains(t, out.String(), "Exiting ProcWatch.")
}

func TestMenuCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	m := menu.New(source(), strings.NewReader("1\n"), &out)
	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
	assert.Empty(t, out.String())
}
