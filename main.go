// Copyright © 2025 The Procwatch Project.

package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/menu"
	"github.com/zosmac/procwatch/process"
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

	m := menu.New(process.NewTable(process.InspectInterval()), os.Stdin, os.Stdout)
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return gocore.Error("menu", err)
	}

	gocore.Error("stop", nil, map[string]string{
		"command": os.Args[0],
	}).Info()
	return nil
}
