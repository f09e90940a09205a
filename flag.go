// Copyright © 2025 The Procwatch Project.

package main

import (
	"github.com/zosmac/gocore"
)

// init initializes the command line flags.
func init() {
	gocore.Flags.CommandDescription = `Interactively lists, inspects, and terminates processes
	of the local host. Enter:
		• 1 to list all processes
		• 2 to inspect a process by PID
		• 3 to terminate a process by PID
		• q to quit`
}
