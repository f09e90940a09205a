// Copyright © 2025 The Procwatch Project.

package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/procwatch/logger"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/process/processtest"
	"github.com/zosmac/procwatch/store"
)

func sampler() *process.Sampler {
	return process.NewSampler(processtest.New(
		process.Record{Pid: 42, Name: "postgres", CPUPercent: 30, MemoryMB: 256},
		process.Record{Pid: 63, Name: "go", CPUPercent: 90, MemoryMB: 512},
	))
}

func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func TestProclogReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")
	var out strings.Builder

	res, err := proclog(context.Background(), &out, sampler(),
		logger.WithPath(path), logger.WithCycles(2), logger.WithTop(5), logger.WithAfter(immediate))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cycles)

	s := out.String()
	assert.Contains(t, s, "Starting process logger. Press Ctrl+C to stop.")
	assert.Equal(t, 2, strings.Count(s, "Logged 2 processes to "+path))
	assert.Contains(t, s, "CPU Consumers (Average)")
	assert.NotContains(t, s, "Logger stopped.")
}

func TestProclogReportsWhenInterrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process_log.csv")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	after := func(time.Duration) <-chan time.Time {
		cancel()
		return make(chan time.Time)
	}

	var out strings.Builder
	res, err := proclog(ctx, &out, sampler(),
		logger.WithPath(path), logger.WithCycles(5), logger.WithTop(5), logger.WithAfter(after))
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Equal(t, 1, res.Cycles)

	s := out.String()
	assert.Contains(t, s, "Logger stopped.")
	assert.Contains(t, s, "go")
	assert.Less(t, strings.Index(s, "Logger stopped."), strings.Index(s, "CPU Consumers (Average)"))
}

func TestProclogStoreUnavailable(t *testing.T) {
	var out strings.Builder
	_, err := proclog(context.Background(), &out, sampler(), logger.WithPath(t.TempDir()))
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Empty(t, out.String())
}

func TestCommandExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", want: 0},
		{name: "failure", err: errors.New("log store unavailable"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCommand()
			err := c.run(func(context.Context) error { return tt.err })(context.Background())
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.want, c.wait())
		})
	}
}

func TestCommandWaitsForMain(t *testing.T) {
	c := newCommand()
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	finished := make(chan struct{})

	go c.run(func(ctx context.Context) error {
		<-ctx.Done()
		<-release // still reporting after the interrupt
		close(finished)
		return nil
	})(ctx)
	<-c.started

	cancel()
	codes := make(chan int, 1)
	go func() { codes <- c.wait() }()

	select {
	case <-codes:
		t.Fatal("wait returned before Main finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, 0, <-codes)
	select {
	case <-finished:
	default:
		t.Fatal("Main did not finish")
	}
}

func TestCommandNeverStarted(t *testing.T) {
	assert.Equal(t, 0, newCommand().wait())
}
