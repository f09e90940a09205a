// Copyright © 2025 The Procwatch Project.

package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/zosmac/procwatch/process"
)

// Writer appends logging cycles to the log. A log has a single writer.
type Writer struct {
	path string
	file *os.File
	last time.Time
	rows int
}

// Open opens the log for appending, creating it with its header if it does not exist.
// An existing log is validated first, so a corrupt log fails before any sample is taken.
func Open(path string) (*Writer, error) {
	w := &Writer{path: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, unavailable(path, err)
	case info.IsDir():
		return nil, unavailable(path, errors.New("is a directory"))
	case info.Size() > 0:
		es, err := Read(path)
		if err != nil {
			return nil, err
		}
		w.rows = len(es)
		if len(es) > 0 {
			w.last = es[len(es)-1].Timestamp
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, unavailable(path, err)
	}
	w.file = f

	if info, err := f.Stat(); err != nil {
		f.Close()
		return nil, unavailable(path, err)
	} else if info.Size() == 0 {
		if err := w.write([][]string{Header}); err != nil {
			f.Close()
			return nil, err
		}
	} else if err := terminate(path, f, info.Size()); err != nil {
		f.Close()
		return nil, err
	}

	return w, nil
}

// Append writes one cycle's records, all stamped with t, as a single write. A timestamp not
// later than the previous cycle's is raised one microsecond past it, the resolution of the log,
// so that each cycle has its own increasing timestamp.
func (w *Writer) Append(t time.Time, rs []process.Record) error {
	t = t.Truncate(time.Microsecond)
	if !w.last.IsZero() && !t.After(w.last) {
		t = w.last.Add(time.Microsecond)
	}
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = NewEntry(t, r).row()
	}
	if err := w.write(rows); err != nil {
		return err
	}
	w.last = t
	w.rows += len(rs)
	return nil
}

// Rows reports the number of entries in the log.
func (w *Writer) Rows() int {
	return w.rows
}

// Close closes the log.
func (w *Writer) Close() error {
	if err := w.file.Close(); err != nil {
		return unavailable(w.path, err)
	}
	return nil
}

// terminate ends a log whose last line has no newline, so that appended rows start a new line.
func terminate(path string, f *os.File, size int64) error {
	r, err := os.Open(path)
	if err != nil {
		return unavailable(path, err)
	}
	defer r.Close()

	last := make([]byte, 1)
	if _, err := r.ReadAt(last, size-1); err != nil {
		return unavailable(path, err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err := f.Write([]byte{'\n'}); err != nil {
		return unavailable(path, err)
	}
	return nil
}

// write encodes rows in memory, then writes and syncs them at once.
func (w *Writer) write(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		return unavailable(w.path, err)
	}
	if _, err := w.file.Write(buf.Bytes()); err != nil {
		return unavailable(w.path, err)
	}
	if err := w.file.Sync(); err != nil {
		return unavailable(w.path, err)
	}
	return nil
}
