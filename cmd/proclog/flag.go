// Copyright © 2025 The Procwatch Project.

package main

import (
	"github.com/zosmac/gocore"
)

// init initializes the command line flags.
func init() {
	gocore.Flags.CommandDescription = `Samples the processes of the local host for a number
	of cycles, appending each cycle to the process log, then reports the top CPU
	and memory consumers found in the log. Interrupt to stop early; the report
	covers every cycle logged.`
}
