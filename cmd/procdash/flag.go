// Copyright © 2025 The Procwatch Project.

package main

import (
	"github.com/zosmac/gocore"
)

// init initializes the command line flags.
func init() {
	gocore.Flags.CommandDescription = `Displays a live terminal dashboard of the local host's
	processes sorted by CPU, with the top consumers and per-process history from the
	process log, and serves over HTTP:
		• /processes, the latest process table
		• /inspect and /terminate, per-process actions
		• /summary and /history, analysis of the process log
		• /metrics, for Prometheus
		• /ws, a web socket delivering the process table`
}
