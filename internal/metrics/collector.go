package metrics

import (
	"time"

	"media-clipper/internal/logging"
)

// StatsProvider interface for collecting scratch storage stats
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current scratch storage statistics
type Stats struct {
	ActiveWorkspaces int
	ScratchBytes     int64
	ScratchFreeBytes int64
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	WorkspacesActive.Set(float64(stats.ActiveWorkspaces))
	ScratchBytes.Set(float64(stats.ScratchBytes))
	ScratchFreeBytes.Set(float64(stats.ScratchFreeBytes))

	logging.Debug("Metrics collected: workspaces=%d, scratch_bytes=%d, free_bytes=%d",
		stats.ActiveWorkspaces, stats.ScratchBytes, stats.ScratchFreeBytes)
}
