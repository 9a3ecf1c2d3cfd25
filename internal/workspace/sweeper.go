package workspace

import (
	"time"

	"media-clipper/internal/logging"
	"media-clipper/internal/metrics"
)

// Sweeper periodically reclaims expired workspaces. A sweep runs
// immediately on Start so directories leaked by a previous process are
// cleared as soon as the service comes up, then on every interval
// tick.
type Sweeper struct {
	manager  *Manager
	interval time.Duration
	stopChan chan struct{}
}

// NewSweeper creates a sweeper over the given manager.
func NewSweeper(m *Manager, interval time.Duration) *Sweeper {
	return &Sweeper{
		manager:  m,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (s *Sweeper) Start() {
	go s.sweepLoop()
}

// Stop stops the sweep loop.
func (s *Sweeper) Stop() {
	close(s.stopChan)
}

func (s *Sweeper) sweepLoop() {
	// Sweep immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	start := time.Now()
	removed, err := s.manager.Sweep()

	metrics.SweeperRunsTotal.Inc()
	metrics.SweeperLastRunTimestamp.SetToCurrentTime()
	metrics.SweeperLastRunDuration.Set(time.Since(start).Seconds())

	if err != nil {
		metrics.SweeperErrorsTotal.Inc()
		logging.Warn("Workspace sweep failed: %v", err)
		return
	}
	if removed > 0 {
		metrics.SweeperRemovedTotal.Add(float64(removed))
		logging.Info("Workspace sweep removed %d expired workspace(s) in %v", removed, time.Since(start).Round(time.Millisecond))
	} else {
		logging.Debug("Workspace sweep found nothing to remove")
	}
}
