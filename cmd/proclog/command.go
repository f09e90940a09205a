// Copyright © 2025 The Procwatch Project.

package main

import (
	"context"
)

// command records the completion and exit code of a Main. gocore.Main returns shortly after an
// interrupt, so main waits for a started Main to finish its report before exiting.
type command struct {
	started chan struct{}
	done    chan struct{}
	code    int
}

func newCommand() *command {
	return &command{
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// run wraps fn to record its start, completion, and failure.
func (c *command) run(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		close(c.started)
		defer close(c.done)
		err := fn(ctx)
		if err != nil {
			c.code = 1
		}
		return err
	}
}

// wait blocks until a started Main is done and returns its exit code.
func (c *command) wait() int {
	select {
	case <-c.started:
		<-c.done
	default:
	}
	return c.code
}
