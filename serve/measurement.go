// Copyright © 2025 The Procwatch Project.

package serve

import (
	"sync/atomic"
	"time"

	"github.com/zosmac/procwatch/process"
)

type (
	// Snapshot is the process table at a refresh, sorted by CPU.
	Snapshot struct {
		Time      time.Time        `json:"time" yaml:"time"`
		Processes []process.Record `json:"processes" yaml:"processes"`
	}

	// measurement counts the operations of a Server.
	measurement struct {
		HTTPRequests   atomic.Int64
		Refreshes      atomic.Int64
		CollectionTime atomic.Int64 // nanoseconds
	}
)
