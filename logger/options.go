// Copyright © 2025 The Procwatch Project.

package logger

import (
	"io"
	"time"

	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/store"
)

func defaultOptions() *Options {
	return &Options{
		Path:     store.Path(),
		Interval: flags.interval,
		Cycles:   flags.cycles,
		Top:      analyze.Top(),
		Now:      time.Now,
		After:    time.After,
		Progress: io.Discard,
	}
}

// Options configures a Logger.
type Options struct {
	Path     string
	Interval time.Duration
	Cycles   int
	Top      int
	Now      func() time.Time
	After    func(time.Duration) <-chan time.Time
	Progress io.Writer
}

// Option modifies Options.
type Option func(*Options)

func WithPath(path string) Option {
	return func(opts *Options) {
		opts.Path = path
	}
}

func WithInterval(d time.Duration) Option {
	return func(opts *Options) {
		opts.Interval = d
	}
}

func WithCycles(n int) Option {
	return func(opts *Options) {
		opts.Cycles = n
	}
}

func WithTop(n int) Option {
	return func(opts *Options) {
		opts.Top = n
	}
}

// WithClock sets the source of cycle timestamps.
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		opts.Now = now
	}
}

// WithAfter sets the timer used to wait between cycles.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(opts *Options) {
		opts.After = after
	}
}

// WithProgress reports each logged cycle to w.
func WithProgress(w io.Writer) Option {
	return func(opts *Options) {
		opts.Progress = w
	}
}
