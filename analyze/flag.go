// Copyright © 2025 The Procwatch Project.

package analyze

import (
	"io"

	"github.com/zosmac/gocore"
)

var (
	// flags defines the command line flags.
	flags = struct {
		top    uint
		format Format
	}{
		top:    5,
		format: FormatText,
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.top,
		"top",
		"[-top <count>]",
		"The `count` of processes to report consuming the most CPU and memory",
	)
	gocore.Flags.Var(
		&flags.format,
		"format",
		"[-format text|yaml|json]",
		"The `format` of the summary report",
	)
}

// Top reports the count of consumers set on the command line.
func Top() int {
	if flags.top < 1 {
		return 1
	}
	return int(flags.top)
}

// Report writes the summary in the format set on the command line.
func Report(w io.Writer, s Summary) error {
	return s.Write(w, flags.format)
}
