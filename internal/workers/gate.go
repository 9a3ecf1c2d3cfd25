package workers

import (
	"context"
	"time"

	"media-clipper/internal/metrics"
)

// Gate bounds how many downloads the service processes at once.
// External fetches and transcodes are heavyweight; everything beyond
// the limit queues in Acquire until a slot frees up or the request is
// canceled.
type Gate struct {
	slots chan struct{}
}

// NewGate creates a gate with the given number of slots. A limit below
// one is treated as one.
func NewGate(limit int) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{slots: make(chan struct{}, limit)}
}

// Acquire blocks until a slot is free or ctx is done. On success the
// caller owns one slot and must Release it.
func (g *Gate) Acquire(ctx context.Context) error {
	start := time.Now()
	select {
	case g.slots <- struct{}{}:
		metrics.QueueWaitDuration.Observe(time.Since(start).Seconds())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees one slot. It panics if called without a matching
// Acquire, which always indicates a programming error.
func (g *Gate) Release() {
	select {
	case <-g.slots:
	default:
		panic("workers: Release without Acquire")
	}
}

// InUse returns the number of occupied slots.
func (g *Gate) InUse() int {
	return len(g.slots)
}

// Capacity returns the total number of slots.
func (g *Gate) Capacity() int {
	return cap(g.slots)
}
