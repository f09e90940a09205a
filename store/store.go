// Copyright © 2025 The Procwatch Project.

package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/zosmac/procwatch/process"
)

const (
	// DefaultPath is the log file used when none is specified.
	DefaultPath = "process_log.csv"

	// TimeFormat is the sortable timestamp format of the log.
	TimeFormat = "2006-01-02T15:04:05.000000Z07:00"
)

var (
	// ErrUnavailable reports a log that cannot be opened, written, or parsed.
	ErrUnavailable = errors.New("log store unavailable")

	// Header names the columns of the log.
	Header = []string{"timestamp", "pid", "name", "cpu_percent", "memory_mb"}

	// layouts are accepted when reading timestamps. The second is written by pandas,
	// in local time without a zone.
	layouts = []string{
		TimeFormat,
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	}
)

// Entry is one logged process sample.
type Entry struct {
	Timestamp  time.Time   `json:"timestamp" yaml:"timestamp"`
	Pid        process.Pid `json:"pid" yaml:"pid"`
	Name       string      `json:"name" yaml:"name"`
	CPUPercent float64     `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryMB   float64     `json:"memory_mb" yaml:"memory_mb"`
}

// NewEntry stamps a process record.
func NewEntry(t time.Time, r process.Record) Entry {
	return Entry{
		Timestamp:  t,
		Pid:        r.Pid,
		Name:       r.Name,
		CPUPercent: r.CPUPercent,
		MemoryMB:   r.MemoryMB,
	}
}

// row formats an entry as CSV fields.
func (e Entry) row() []string {
	return []string{
		e.Timestamp.Format(TimeFormat),
		e.Pid.String(),
		e.Name,
		strconv.FormatFloat(e.CPUPercent, 'f', -1, 64),
		strconv.FormatFloat(e.MemoryMB, 'f', -1, 64),
	}
}

// parse converts CSV fields to an entry.
func parse(row []string) (Entry, error) {
	var e Entry
	var err error
	if e.Timestamp, err = parseTime(row[0]); err != nil {
		return e, err
	}
	pid, err := strconv.Atoi(row[1])
	if err != nil {
		return e, fmt.Errorf("pid %q: %w", row[1], err)
	}
	e.Pid = process.Pid(pid)
	e.Name = row[2]
	if e.CPUPercent, err = strconv.ParseFloat(row[3], 64); err != nil {
		return e, fmt.Errorf("cpu_percent %q: %w", row[3], err)
	}
	if e.MemoryMB, err = strconv.ParseFloat(row[4], 64); err != nil {
		return e, fmt.Errorf("memory_mb %q: %w", row[4], err)
	}
	return e, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q: unrecognized format", s)
}

// unavailable annotates an error with the path of the log.
func unavailable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
}
