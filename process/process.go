// Copyright © 2025 The Procwatch Project.

package process

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/zosmac/gocore"
)

type (
	// Pid is the identifier for a process.
	Pid int

	// Field names a process attribute that a snapshot reads.
	Field string

	// Record reports the measured fields of one process at snapshot time.
	Record struct {
		Pid           Pid     `json:"pid" yaml:"pid"`
		Name          string  `json:"name" yaml:"name"`
		CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
		MemoryMB      float64 `json:"memory_mb" yaml:"memory_mb"`
		MemoryPercent float64 `json:"memory_percent,omitempty" yaml:"memory_percent,omitempty"`
		Username      string  `json:"username,omitempty" yaml:"username,omitempty"`
		Status        string  `json:"status,omitempty" yaml:"status,omitempty"`
		Exe           string  `json:"exe,omitempty" yaml:"exe,omitempty"`
	}
)

const (
	FieldPid           Field = "pid"
	FieldName          Field = "name"
	FieldCPU           Field = "cpu_percent"
	FieldMemory        Field = "memory_mb"
	FieldMemoryPercent Field = "memory_percent"
	FieldUsername      Field = "username"
	FieldStatus        Field = "status"
	FieldExe           Field = "exe"
)

var (
	// fields defines the valid Field values.
	fields = gocore.ValidValue[Field]{}.Define(
		FieldPid,
		FieldName,
		FieldCPU,
		FieldMemory,
		FieldMemoryPercent,
		FieldUsername,
		FieldStatus,
		FieldExe,
	)

	// ListFields are read for an interactive process listing.
	ListFields = []Field{FieldPid, FieldName, FieldCPU, FieldMemory, FieldMemoryPercent, FieldUsername}

	// LogFields are read for each logged cycle.
	LogFields = []Field{FieldPid, FieldName, FieldCPU, FieldMemory}

	// AllFields are read when inspecting a single process.
	AllFields = []Field{
		FieldPid,
		FieldName,
		FieldCPU,
		FieldMemory,
		FieldMemoryPercent,
		FieldUsername,
		FieldStatus,
		FieldExe,
	}
)

// String formats a pid as a string to comply with fmt.Stringer interface.
func (pid Pid) String() string {
	return strconv.Itoa(int(pid))
}

// ParsePid converts user input to a Pid. Only positive pids identify a single process.
func ParsePid(s string) (Pid, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pid %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid pid %d", n)
	}
	return Pid(n), nil
}

// identity ensures pid and name lead the requested fields, and reports the first unknown field.
func identity(fs []Field) ([]Field, error) {
	out := []Field{FieldPid, FieldName}
	for _, f := range fs {
		if !fields.IsValid(f) {
			return nil, fmt.Errorf("unknown field %q", f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// SortByCPU orders records by descending CPU usage, keeping snapshot order for ties.
func SortByCPU(rs []Record) {
	slices.SortStableFunc(rs, func(a, b Record) int {
		return cmp.Compare(b.CPUPercent, a.CPUPercent)
	})
}
