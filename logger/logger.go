// Copyright © 2025 The Procwatch Project.

package logger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/store"
)

type (
	// State of a Logger.
	State string

	// Result reports a completed run.
	Result struct {
		Cycles    int             `json:"cycles" yaml:"cycles"`
		Rows      int             `json:"rows" yaml:"rows"`
		Cancelled bool            `json:"cancelled" yaml:"cancelled"`
		Summary   analyze.Summary `json:"summary" yaml:"summary"`
	}

	// Logger appends sampling cycles to the process log.
	Logger struct {
		sampler *process.Sampler
		writer  *store.Writer
		opts    *Options

		state State
		lock  sync.Mutex
	}
)

const (
	Idle      State = "idle"
	Sampling  State = "sampling"
	Waiting   State = "waiting"
	Done      State = "done"
	Cancelled State = "cancelled"
)

// New opens the log for a Logger. A log that cannot be opened for appending fails here,
// before any sampling.
func New(sampler *process.Sampler, opts ...Option) (*Logger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Cycles < 1 {
		return nil, errors.New("cycles must be positive")
	}
	if o.Interval < 0 {
		return nil, errors.New("interval must not be negative")
	}

	w, err := store.Open(o.Path)
	if err != nil {
		return nil, err
	}

	return &Logger{
		sampler: sampler,
		writer:  w,
		opts:    o,
		state:   Idle,
	}, nil
}

// State reports the current state of the Logger.
func (l *Logger) State() State {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.state
}

func (l *Logger) setState(s State) {
	l.lock.Lock()
	l.state = s
	l.lock.Unlock()
}

// Run logs the configured cycles, then summarizes the log. Cancelling ctx ends the run
// after the cycle in progress, keeping every cycle already appended.
func (l *Logger) Run(ctx context.Context) (Result, error) {
	var res Result

loop:
	for res.Cycles < l.opts.Cycles {
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		l.setState(Sampling)
		n, err := l.cycle(ctx, res.Cycles+1)
		if err != nil {
			l.writer.Close()
			return res, err
		}
		res.Cycles++
		res.Rows += n

		// cancelled while sampling, including the last cycle
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}
		if res.Cycles == l.opts.Cycles {
			break
		}

		l.setState(Waiting)
		select {
		case <-ctx.Done():
			res.Cancelled = true
			break loop
		case <-l.opts.After(l.opts.Interval):
		}
	}

	if res.Cancelled {
		l.setState(Cancelled)
	} else {
		l.setState(Done)
	}

	if err := l.writer.Close(); err != nil {
		return res, err
	}

	var err error
	res.Summary, err = analyze.Summarize(l.opts.Path, l.opts.Top)
	return res, err
}

// cycle samples once and appends the records under one timestamp.
// Sampling is not interrupted by cancellation.
func (l *Logger) cycle(ctx context.Context, n int) (int, error) {
	t := l.opts.Now()
	rs, err := l.sampler.Sample(context.WithoutCancel(ctx), process.LogFields...)
	if err != nil {
		gocore.Error("sample", err, map[string]string{
			"cycle": strconv.Itoa(n),
		}).Warn()
		rs = nil
	}

	if err := l.writer.Append(t, rs); err != nil {
		return 0, err
	}

	fmt.Fprintf(l.opts.Progress, "Logged %d processes to %s\n", len(rs), l.opts.Path)
	gocore.Error("cycle", nil, map[string]string{
		"cycle":     strconv.Itoa(n),
		"rows":      strconv.Itoa(len(rs)),
		"timestamp": t.Format(store.TimeFormat),
	}).Info()

	return len(rs), nil
}
