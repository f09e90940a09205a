// Copyright © 2025 The Procwatch Project.

package serve

import (
	"context"
	"errors"
	"time"

	"github.com/zosmac/gocore"
)

var (
	// flags defines the command line flags.
	flags = struct {
		port int
		sample
	}{
		port:   1234,
		sample: sample(2 * time.Second),
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.port,
		"port",
		"[-port n]",
		"Port number for the procwatch HTTP server",
	)
	gocore.Flags.Var(
		&flags.sample,
		"sample",
		"[-sample <interval>]",
		"Sample processes at `interval`, specified in Go time.Duration string format",
	)
}

// sample is a command line flag type.
type sample time.Duration

// Set is a flag.Value interface method to enable sample as a command line flag.
func (i *sample) Set(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d < 100*time.Millisecond {
		return errors.New("invalid sample interval")
	}
	*i = sample(d)
	return nil
}

// String is a flag.Value interface method to enable sample as a command line flag.
func (i *sample) String() string {
	return time.Duration(*i).String()
}

// alignTicker starts a ticker on the next multiple of the interval.
func (i sample) alignTicker(ctx context.Context) (*time.Ticker, error) {
	d := time.Duration(i)
	t := time.Now()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(d - t.Sub(t.Truncate(d))):
	}
	return time.NewTicker(d), nil
}
