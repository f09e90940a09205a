// Copyright © 2025 The Procwatch Project.

package process

import (
	"time"

	"github.com/zosmac/gocore"
)

var (
	// flags defines the command line flags.
	flags = struct {
		inspect time.Duration
	}{
		inspect: time.Second,
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.inspect,
		"inspect",
		"[-inspect <interval>]",
		"Measure an inspected process' CPU usage over `interval`, specified in Go time.Duration string format",
	)
}

// InspectInterval reports the CPU measurement interval for Inspect.
func InspectInterval() time.Duration {
	if flags.inspect < 0 {
		return 0
	}
	return flags.inspect
}
