// Copyright © 2025 The Procwatch Project.

package analyze

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/store"
)

type (
	// Stat aggregates the log entries of one process name.
	Stat struct {
		Name     string  `json:"name" yaml:"name"`
		Samples  int     `json:"samples" yaml:"samples"`
		AvgCPU   float64 `json:"avg_cpu" yaml:"avg_cpu"`
		MaxCPU   float64 `json:"max_cpu" yaml:"max_cpu"`
		AvgMemMB float64 `json:"avg_mem_mb" yaml:"avg_mem_mb"`
		MaxMemMB float64 `json:"max_mem_mb" yaml:"max_mem_mb"`
	}

	// Summary ranks the top consumers by average CPU and by average memory.
	Summary struct {
		ByCPU []Stat `json:"by_cpu" yaml:"by_cpu"`
		ByMem []Stat `json:"by_mem" yaml:"by_mem"`
	}

	// Point is one logged sample in a process name's history.
	Point struct {
		Timestamp  time.Time   `json:"timestamp" yaml:"timestamp"`
		Pid        process.Pid `json:"pid" yaml:"pid"`
		CPUPercent float64     `json:"cpu_percent" yaml:"cpu_percent"`
		MemoryMB   float64     `json:"memory_mb" yaml:"memory_mb"`
	}
)

// ErrTop reports a non-positive count of consumers.
var ErrTop = errors.New("top count must be positive")

// Summarize reads the whole log and reports the top consumers. A missing or
// unparsable log is store.ErrUnavailable.
func Summarize(path string, top int) (Summary, error) {
	if top < 1 {
		return Summary{}, ErrTop
	}
	es, err := store.Read(path)
	if err != nil {
		return Summary{}, err
	}
	return Rank(Aggregate(es), top), nil
}

// Aggregate computes each process name's statistics, in order of first appearance.
func Aggregate(es []store.Entry) []Stat {
	index := map[string]int{}
	stats := []Stat{}
	var cpu, mem []float64 // sums
	for _, e := range es {
		i, ok := index[e.Name]
		if !ok {
			i = len(stats)
			index[e.Name] = i
			stats = append(stats, Stat{Name: e.Name, MaxCPU: e.CPUPercent, MaxMemMB: e.MemoryMB})
			cpu = append(cpu, 0)
			mem = append(mem, 0)
		}
		s := &stats[i]
		s.Samples++
		cpu[i] += e.CPUPercent
		mem[i] += e.MemoryMB
		s.MaxCPU = max(s.MaxCPU, e.CPUPercent)
		s.MaxMemMB = max(s.MaxMemMB, e.MemoryMB)
	}

	for i := range stats {
		n := float64(stats[i].Samples)
		stats[i].AvgCPU = cpu[i] / n
		stats[i].AvgMemMB = mem[i] / n
	}

	return stats
}

// Rank orders statistics by descending average CPU and by descending average memory,
// keeping the first encountered name ahead on ties, and keeps the top of each.
func Rank(stats []Stat, top int) Summary {
	return Summary{
		ByCPU: rank(stats, top, func(s Stat) float64 { return s.AvgCPU }),
		ByMem: rank(stats, top, func(s Stat) float64 { return s.AvgMemMB }),
	}
}

func rank(stats []Stat, top int, key func(Stat) float64) []Stat {
	ss := make([]Stat, len(stats))
	copy(ss, stats)
	slices.SortStableFunc(ss, func(a, b Stat) int { return cmp.Compare(key(b), key(a)) })
	if len(ss) > top {
		ss = ss[:top]
	}
	return ss
}

// History extracts the samples of one process name in log order.
func History(es []store.Entry, name string) []Point {
	ps := []Point{}
	for _, e := range es {
		if e.Name == name {
			ps = append(ps, Point{
				Timestamp:  e.Timestamp,
				Pid:        e.Pid,
				CPUPercent: e.CPUPercent,
				MemoryMB:   e.MemoryMB,
			})
		}
	}
	return ps
}

// Names lists the distinct process names of the log in order of first appearance.
func Names(es []store.Entry) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, e := range es {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}
