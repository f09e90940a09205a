// Copyright © 2025 The Procwatch Project.

package logger

import (
	"time"

	"github.com/zosmac/gocore"
)

var (
	// flags defines the command line flags.
	flags = struct {
		cycles   int
		interval time.Duration
	}{
		cycles:   5,
		interval: 10 * time.Second,
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.cycles,
		"cycles",
		"[-cycles <count>]",
		"The `count` of sampling cycles to log",
	)
	gocore.Flags.Var(
		&flags.interval,
		"interval",
		"[-interval <interval>]",
		"Wait `interval` between cycles, specified in Go time.Duration string format",
	)
}
