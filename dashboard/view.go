// Copyright © 2025 The Procwatch Project.

package dashboard

import (
	"fmt"
	"strconv"

	"github.com/c2h5oh/datasize"
	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/process"
)

var (
	processHeader = []string{"PID", "Name", "User", "CPU%", "MEM%", "RSS"}
	summaryHeader = []string{"Name", "Samples", "Avg CPU%", "Max CPU%", "Avg MB", "Max MB"}
)

// processRows formats up to limit records, or all if limit is negative, as table rows below the header.
func processRows(rs []process.Record, limit int) [][]string {
	if limit > len(rs) || limit < 0 {
		limit = len(rs)
	}
	rows := make([][]string, 0, limit+1)
	rows = append(rows, processHeader)
	for _, r := range rs[:limit] {
		rows = append(rows, []string{
			r.Pid.String(),
			r.Name,
			r.Username,
			strconv.FormatFloat(r.CPUPercent, 'f', 1, 64),
			strconv.FormatFloat(r.MemoryPercent, 'f', 1, 64),
			datasize.ByteSize(r.MemoryMB * float64(datasize.MB)).HumanReadable(),
		})
	}
	return rows
}

// summaryRows formats consumer statistics as table rows, below the header.
func summaryRows(stats []analyze.Stat) [][]string {
	rows := make([][]string, 0, len(stats)+1)
	rows = append(rows, summaryHeader)
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Samples),
			fmt.Sprintf("%.2f", s.AvgCPU),
			fmt.Sprintf("%.2f", s.MaxCPU),
			fmt.Sprintf("%.2f", s.AvgMemMB),
			fmt.Sprintf("%.2f", s.MaxMemMB),
		})
	}
	return rows
}

// series splits a history into its CPU and memory values, keeping at most the last n.
// A sparkline needs at least one value.
func series(ps []analyze.Point, n int) (cpu, mem []float64) {
	if len(ps) > n {
		ps = ps[len(ps)-n:]
	}
	if len(ps) == 0 {
		return []float64{0}, []float64{0}
	}
	cpu = make([]float64, len(ps))
	mem = make([]float64, len(ps))
	for i, p := range ps {
		cpu[i] = p.CPUPercent
		mem[i] = p.MemoryMB
	}
	return cpu, mem
}

// maximum returns the largest value.
func maximum(vs []float64) float64 {
	var m float64
	for _, v := range vs {
		m = max(m, v)
	}
	return m
}
