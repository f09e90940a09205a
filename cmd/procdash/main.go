// Copyright © 2025 The Procwatch Project.

/*
Procdash displays a terminal dashboard of the processes and the process log, and serves them
over HTTP.

Flags:
  - -port:   the port of the HTTP server (default 1234)
  - -sample: the refresh interval of the process table (default 2s)
  - -store:  the process log (default process_log.csv)
  - -top:    the number of logged consumers to show (default 5)
*/
package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/dashboard"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/serve"
	"github.com/zosmac/procwatch/store"
)

// main
func main() {
	gocore.Main(Main)
}

// Main called from gocore.Main.
func Main(ctx context.Context) error {
	exe, _ := os.Executable()
	gocore.Error("start", nil, map[string]string{
		"pid":        strconv.Itoa(os.Getpid()),
		"command":    strings.Join(os.Args, " "),
		"executable": exe,
		"version":    gocore.Version,
		"user":       gocore.Username(os.Getuid()),
	}).Info()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := serve.New(process.NewTable(process.InspectInterval()), store.Path(), analyze.Top())
	address := serve.Serve(ctx, s)
	go func() {
		if err := s.Measure(ctx); err != nil && !errors.Is(err, context.Canceled) {
			gocore.Error("measure", err).Err()
		}
	}()

	if err := dashboard.New(s, store.Path(), analyze.Top(), address).Run(ctx); err != nil {
		return gocore.Error("dashboard", err)
	}

	gocore.Error("stop", nil, map[string]string{
		"command": os.Args[0],
	}).Info()
	return nil
}
