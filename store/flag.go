// Copyright © 2025 The Procwatch Project.

package store

import (
	"github.com/zosmac/gocore"
)

var (
	// flags defines the command line flags.
	flags = struct {
		path string
	}{
		path: DefaultPath,
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.path,
		"store",
		"[-store <path>]",
		"The `path` of the CSV process log",
	)
}

// Path reports the log path set on the command line.
func Path() string {
	return flags.path
}
