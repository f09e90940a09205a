// Copyright © 2025 The Procwatch Project.

package serve

import (
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/prometheus/client_golang/prometheus"
)

// collector complies with the Prometheus Collector interface.
type collector struct {
	server *Server
}

var (
	cpuDesc = prometheus.NewDesc(
		"procwatch_process_cpu_percent",
		"units: percent",
		[]string{"pid", "name"},
		nil,
	)
	memoryDesc = prometheus.NewDesc(
		"procwatch_process_memory_bytes",
		"units: B",
		[]string{"pid", "name"},
		nil,
	)
	memoryPercentDesc = prometheus.NewDesc(
		"procwatch_process_memory_percent",
		"units: percent",
		[]string{"pid", "name"},
		nil,
	)
	processesDesc = prometheus.NewDesc(
		"procwatch_processes",
		"units: count",
		nil,
		nil,
	)
	requestsDesc = prometheus.NewDesc(
		"procwatch_http_requests",
		"units: count",
		nil,
		nil,
	)
	refreshesDesc = prometheus.NewDesc(
		"procwatch_refreshes",
		"units: count",
		nil,
		nil,
	)
	collectionTimeDesc = prometheus.NewDesc(
		"procwatch_collection_time_seconds",
		"units: seconds",
		nil,
		nil,
	)
)

// Describe returns metric descriptions for collector.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cpuDesc
	ch <- memoryDesc
	ch <- memoryPercentDesc
	ch <- processesDesc
	ch <- requestsDesc
	ch <- refreshesDesc
	ch <- collectionTimeDesc
}

// Collect reports the latest snapshot to Prometheus.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	start := time.Now()
	m := &c.server.measures
	snap := c.server.Latest()

	for _, r := range snap.Processes {
		pid := r.Pid.String()
		ch <- prometheus.MustNewConstMetric(cpuDesc, prometheus.GaugeValue, r.CPUPercent, pid, r.Name)
		ch <- prometheus.MustNewConstMetric(memoryDesc, prometheus.GaugeValue,
			r.MemoryMB*float64(datasize.MB), pid, r.Name)
		ch <- prometheus.MustNewConstMetric(memoryPercentDesc, prometheus.GaugeValue, r.MemoryPercent, pid, r.Name)
	}
	ch <- prometheus.MustNewConstMetric(processesDesc, prometheus.GaugeValue, float64(len(snap.Processes)))
	ch <- prometheus.MustNewConstMetric(requestsDesc, prometheus.CounterValue, float64(m.HTTPRequests.Load()))
	ch <- prometheus.MustNewConstMetric(refreshesDesc, prometheus.CounterValue, float64(m.Refreshes.Load()))

	m.CollectionTime.Add(int64(time.Since(start)))
	ch <- prometheus.MustNewConstMetric(collectionTimeDesc, prometheus.CounterValue,
		time.Duration(m.CollectionTime.Load()).Seconds())
}
