// Copyright © 2025 The Procwatch Project.

package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/store"
)

var t0 = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

func records() []process.Record {
	return []process.Record{
		{Pid: 1, Name: "init", CPUPercent: 0, MemoryMB: 11.5},
		{Pid: 42, Name: "postgres, primary", CPUPercent: 12.25, MemoryMB: 256},
	}
}

func TestOpenAppendRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(t0, records()))
	require.NoError(t, w.Append(t0.Add(10*time.Second), records()[:1]))
	assert.Equal(t, 3, w.Rows())
	require.NoError(t, w.Close())

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `timestamp,pid,name,cpu_percent,memory_mb
2025-03-14T09:26:53.589793Z,1,init,0,11.5
2025-03-14T09:26:53.589793Z,42,"postgres, primary",12.25,256
2025-03-14T09:27:03.589793Z,1,init,0,11.5
`, string(buf))

	es, err := store.Read(path)
	require.NoError(t, err)
	require.Len(t, es, 3)
	assert.True(t, es[0].Timestamp.Equal(t0))
	assert.Equal(t, "postgres, primary", es[1].Name)
	assert.Equal(t, process.Pid(42), es[1].Pid)
	assert.Equal(t, 12.25, es[1].CPUPercent)
	assert.True(t, es[2].Timestamp.Equal(t0.Add(10*time.Second)))
}

func TestOpenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(t0, records()))
	require.NoError(t, w.Close())

	w, err = store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Rows())

	// a clock that stepped backwards or stood still does not reorder the log
	require.NoError(t, w.Append(t0.Add(-time.Hour), records()[:1]))
	require.NoError(t, w.Append(t0, records()[:1]))
	require.NoError(t, w.Close())

	es, err := store.Read(path)
	require.NoError(t, err)
	require.Len(t, es, 4)
	assert.True(t, es[2].Timestamp.Equal(t0.Add(time.Microsecond)))
	assert.True(t, es[3].Timestamp.Equal(t0.Add(2*time.Microsecond)))
}

func TestAppendTruncatesToLogResolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(t0, records()[:1]))
	require.NoError(t, w.Append(t0.Add(500*time.Nanosecond), records()[:1]))
	require.NoError(t, w.Close())

	es, err := store.Read(path)
	require.NoError(t, err)
	require.Len(t, es, 2)
	assert.True(t, es[1].Timestamp.After(es[0].Timestamp))
}

func TestOpenUnterminatedLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"timestamp,pid,name,cpu_percent,memory_mb\n"+
			"2025-03-14T09:26:53.589793Z,1,init,0,11.5"), 0o644))

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(t0.Add(10*time.Second), records()))
	require.NoError(t, w.Close())

	es, err := store.Read(path)
	require.NoError(t, err)
	require.Len(t, es, 3)
	assert.Equal(t, "init", es[0].Name)
	assert.Equal(t, 11.5, es[0].MemoryMB)
	assert.Equal(t, "postgres, primary", es[2].Name)
}

func TestAppendEmptyCycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(t0, nil))
	require.NoError(t, w.Close())

	es, err := store.Read(path)
	require.NoError(t, err)
	assert.Empty(t, es)
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,pid,name,cpu_percent,memory_mb\n", string(buf))
}

func TestOpenUnavailable(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.csv")
	content := "when,who\n2025-01-01,1\n"
	require.NoError(t, os.WriteFile(corrupt, []byte(content), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "directory", path: dir},
		{name: "corrupt header", path: corrupt},
		{name: "missing parent", path: filepath.Join(dir, "missing", "process_log.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := store.Open(tt.path)
			assert.ErrorIs(t, err, store.ErrUnavailable)
			assert.Nil(t, w)
		})
	}

	buf, err := os.ReadFile(corrupt)
	require.NoError(t, err)
	assert.Equal(t, content, string(buf), "a corrupt log is not modified")
}

func TestReadUnavailable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing"},
		{name: "empty", content: ptr("")},
		{name: "wrong header", content: ptr("time,pid,name,cpu,mem\n")},
		{name: "short row", content: ptr("timestamp,pid,name,cpu_percent,memory_mb\n2025-03-14T09:26:53.000000Z,1,init\n")},
		{name: "bad pid", content: ptr("timestamp,pid,name,cpu_percent,memory_mb\n2025-03-14T09:26:53.000000Z,one,init,0,1\n")},
		{name: "bad cpu", content: ptr("timestamp,pid,name,cpu_percent,memory_mb\n2025-03-14T09:26:53.000000Z,1,init,x,1\n")},
		{name: "bad timestamp", content: ptr("timestamp,pid,name,cpu_percent,memory_mb\nyesterday,1,init,0,1\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".csv")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			es, err := store.Read(path)
			assert.ErrorIs(t, err, store.ErrUnavailable)
			assert.Nil(t, es)
		})
	}
}

// local forces the local time zone for the duration of a test.
func local(t *testing.T, loc *time.Location) {
	t.Helper()
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
}

func TestReadPandasTimestamps(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local(t, ist)

	path := filepath.Join(t.TempDir(), "process_log.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"timestamp,pid,name,cpu_percent,memory_mb\n"+
			"2025-03-14 09:26:53.589793,1,systemd,0.0,11.75\n"), 0o644))

	es, err := store.Read(path)
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.True(t, es[0].Timestamp.Equal(time.Date(2025, 3, 14, 9, 26, 53, 589793000, ist)))
	assert.Equal(t, "systemd", es[0].Name)
	assert.Equal(t, 11.75, es[0].MemoryMB)
}

func TestAppendAfterPandasLogEastOfUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local(t, ist)

	// a minute before t0, written by pandas in local time
	path := filepath.Join(t.TempDir(), "process_log.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"timestamp,pid,name,cpu_percent,memory_mb\n"+
			t0.Add(-time.Minute).In(ist).Format("2006-01-02 15:04:05.000000")+",1,systemd,0.0,11.75\n"), 0o644))

	w, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(t0, records()[:1]))
	require.NoError(t, w.Append(t0.Add(10*time.Second), records()[:1]))
	require.NoError(t, w.Close())

	es, err := store.Read(path)
	require.NoError(t, err)
	require.Len(t, es, 3)
	assert.True(t, es[0].Timestamp.Equal(t0.Add(-time.Minute)))
	assert.True(t, es[1].Timestamp.Equal(t0))
	assert.True(t, es[2].Timestamp.Equal(t0.Add(10*time.Second)))
}

func ptr(s string) *string {
	return &s
}
