// Copyright © 2025 The Procwatch Project.

package analyze

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/zosmac/gocore"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a report.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// formats defines the valid Format values.
	formats = gocore.ValidValue[Format]{}.Define(
		FormatText,
		FormatYAML,
		FormatJSON,
	)
)

// Set is a flag.Value interface method to enable Format as a command line flag.
func (f *Format) Set(s string) error {
	v := Format(strings.ToLower(s))
	if !formats.IsValid(v) {
		return fmt.Errorf("invalid format %q, choose one of %s", s, strings.Join(formats.ValidValues(), ", "))
	}
	*f = v
	return nil
}

// String is a flag.Value interface method to enable Format as a command line flag.
func (f *Format) String() string {
	return string(*f)
}

// Write reports the summary in a format.
func (s Summary) Write(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	if err := table(w, fmt.Sprintf("--- Top %d CPU Consumers (Average) ---", len(s.ByCPU)), s.ByCPU); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return table(w, fmt.Sprintf("--- Top %d Memory Consumers (Average) ---", len(s.ByMem)), s.ByMem)
}

// table writes statistics as aligned columns.
func table(w io.Writer, title string, stats []Stat) error {
	fmt.Fprintln(w, title)
	if len(stats) == 0 {
		fmt.Fprintln(w, "(no samples)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "NAME\tAVG CPU\tMAX CPU\tAVG MEM MB\tMAX MEM MB\tSAMPLES\t")
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t\n",
			st.Name, st.AvgCPU, st.MaxCPU, st.AvgMemMB, st.MaxMemMB, st.Samples)
	}
	return tw.Flush()
}
