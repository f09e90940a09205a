// Copyright © 2025 The Procwatch Project.

/*
Proclog logs process samples to a CSV file and reports the top consumers. It exits 1 when the
process log cannot be opened or written, and 0 when all cycles are logged or it is interrupted.

Flags:
  - -store:    the process log (default process_log.csv)
  - -cycles:   the number of sampling cycles (default 5)
  - -interval: the wait between cycles (default 10s)
  - -top:      the number of consumers to report (default 5)
  - -format:   the report format, text, yaml, or json (default text)
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/logger"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/store"
)

// cmd tracks the run of Main.
var cmd = newCommand()

// main
func main() {
	gocore.Main(cmd.run(Main))
	os.Exit(cmd.wait())
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

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := proclog(ctx, os.Stdout,
		process.NewSampler(process.NewTable(process.InspectInterval())),
	)
	if err != nil {
		return gocore.Error("logger", err, map[string]string{
			"store":  store.Path(),
			"cycles": strconv.Itoa(res.Cycles),
		})
	}

	gocore.Error("stop", nil, map[string]string{
		"command":   os.Args[0],
		"cycles":    strconv.Itoa(res.Cycles),
		"rows":      strconv.Itoa(res.Rows),
		"cancelled": strconv.FormatBool(res.Cancelled),
	}).Info()
	return nil
}

// proclog logs the cycles and writes the report to out, also when interrupted.
func proclog(ctx context.Context, out io.Writer, sampler *process.Sampler, opts ...logger.Option) (logger.Result, error) {
	l, err := logger.New(sampler, append([]logger.Option{logger.WithProgress(out)}, opts...)...)
	if err != nil {
		return logger.Result{}, err
	}

	fmt.Fprintln(out, "Starting process logger. Press Ctrl+C to stop.")
	res, err := l.Run(ctx)
	if res.Cancelled {
		fmt.Fprintln(out, "\nLogger stopped.")
	}
	if err != nil {
		return res, err
	}

	if err := analyze.Report(out, res.Summary); err != nil {
		return res, err
	}
	return res, nil
}
