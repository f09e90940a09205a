// Copyright © 2025 The Procwatch Project.

package serve

import (
	"context"
	"time"

	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/process"
)

// Refresh samples the process table and makes it the latest snapshot.
func (s *Server) Refresh(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	rs, err := s.sampler.Sample(ctx, process.ListFields...)
	if err != nil {
		return Snapshot{}, err
	}
	process.SortByCPU(rs)
	snap := Snapshot{Time: start, Processes: rs}

	s.lock.Lock()
	s.latest = snap
	s.lock.Unlock()
	s.measures.Refreshes.Add(1)

	s.publish(snap)
	return snap, nil
}

// Latest returns the most recent snapshot.
func (s *Server) Latest() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.latest
}

// Updates delivers each new snapshot. A slow receiver sees only the newest.
func (s *Server) Updates() <-chan Snapshot {
	return s.updates
}

// publish replaces any undelivered snapshot with snap.
func (s *Server) publish(snap Snapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

// Measure refreshes the snapshot at each sample interval until ctx is cancelled.
func (s *Server) Measure(ctx context.Context) error {
	if _, err := s.Refresh(ctx); err != nil {
		gocore.Error("refresh", err).Warn()
	}

	ticker, err := flags.sample.alignTicker(ctx)
	if err != nil {
		return err
	}
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				gocore.Error("refresh", err).Warn()
			}
		}
	}
}
