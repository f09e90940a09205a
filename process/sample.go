// Copyright © 2025 The Procwatch Project.

package process

import (
	"context"
)

// Sampler materializes snapshots of a Source.
type Sampler struct {
	source Source
}

// NewSampler creates a Sampler for a Source.
func NewSampler(source Source) *Sampler {
	return &Sampler{source: source}
}

// Sample reads fields of all processes, always including pid and name. Processes that fail
// to be read (exited, zombie, access denied) are dropped. Records keep snapshot order.
func (s *Sampler) Sample(ctx context.Context, fields ...Field) ([]Record, error) {
	fs, err := identity(fields)
	if err != nil {
		return nil, err
	}

	ls, err := s.source.List(ctx, fs)
	if err != nil {
		return nil, err
	}

	rs := make([]Record, 0, len(ls))
	for _, l := range ls {
		if l.Err != nil {
			continue
		}
		rs = append(rs, l.Record)
	}

	return rs, nil
}
