package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"media-clipper/internal/filesystem"
	"media-clipper/internal/logging"
	"media-clipper/internal/metrics"
)

// Manager owns the scratch root directory and hands out isolated
// per-request workspaces beneath it.
type Manager struct {
	root  string
	ttl   time.Duration
	retry filesystem.RetryConfig
}

// NewManager creates the scratch root if needed and returns a manager
// for it. ttl bounds how long an unreleased workspace may live before
// the sweeper reclaims it.
func NewManager(root string, ttl time.Duration) (*Manager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch root %s: %w", root, err)
	}
	return &Manager{
		root:  root,
		ttl:   ttl,
		retry: filesystem.DefaultRetryConfig(),
	}, nil
}

// Root returns the scratch root directory.
func (m *Manager) Root() string {
	return m.root
}

// TTL returns the workspace time-to-live.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Acquire creates a fresh workspace directory with a unique name and
// returns a handle to it. The caller must Release the handle when the
// request finishes, on success and on failure alike.
func (m *Manager) Acquire() (*Handle, error) {
	dir := filepath.Join(m.root, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	metrics.WorkspacesCreatedTotal.Inc()
	logging.Debug("Acquired workspace %s", dir)
	return &Handle{dir: dir, retry: m.retry}, nil
}

// Entry describes one workspace directory currently on disk.
type Entry struct {
	Name    string
	ModTime time.Time
	Size    int64
}

// List returns the workspaces under the scratch root, oldest first.
func (m *Manager) List() ([]Entry, error) {
	dirEntries, err := filesystem.ReadDirWithRetry(m.root, m.retry)
	if err != nil {
		return nil, fmt.Errorf("listing scratch root: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		size, _ := filesystem.DirSize(filepath.Join(m.root, de.Name()))
		entries = append(entries, Entry{
			Name:    de.Name(),
			ModTime: info.ModTime(),
			Size:    size,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.Before(entries[j].ModTime)
	})
	return entries, nil
}

// Sweep removes workspaces older than the TTL, including any left
// behind by earlier runs of the service. It returns the number of
// workspaces removed; removal failures are logged and counted but do
// not abort the sweep.
func (m *Manager) Sweep() (int, error) {
	dirEntries, err := filesystem.ReadDirWithRetry(m.root, m.retry)
	if err != nil {
		return 0, fmt.Errorf("listing scratch root: %w", err)
	}

	removed := 0
	cutoff := time.Now().Add(-m.ttl)
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(m.root, de.Name())
		if err := filesystem.RemoveAllWithRetry(path, m.retry); err != nil {
			logging.Warn("Failed to remove expired workspace %s: %v", path, err)
			metrics.SweeperErrorsTotal.Inc()
			continue
		}
		logging.Info("Removed expired workspace %s (age %v)", path, time.Since(info.ModTime()).Round(time.Second))
		removed++
	}
	return removed, nil
}

// Purge removes every workspace under the scratch root regardless of
// age. It returns the number of workspaces removed.
func (m *Manager) Purge() (int, error) {
	dirEntries, err := filesystem.ReadDirWithRetry(m.root, m.retry)
	if err != nil {
		return 0, fmt.Errorf("listing scratch root: %w", err)
	}

	removed := 0
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		path := filepath.Join(m.root, de.Name())
		if err := filesystem.RemoveAllWithRetry(path, m.retry); err != nil {
			logging.Warn("Failed to remove workspace %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// GetStats implements metrics.StatsProvider for the metrics collector.
func (m *Manager) GetStats() metrics.Stats {
	var stats metrics.Stats
	if dirEntries, err := filesystem.ReadDirWithRetry(m.root, m.retry); err == nil {
		for _, de := range dirEntries {
			if de.IsDir() {
				stats.ActiveWorkspaces++
			}
		}
	}
	if size, err := filesystem.DirSize(m.root); err == nil {
		stats.ScratchBytes = size
	}
	if free, err := filesystem.DiskFree(m.root); err == nil {
		stats.ScratchFreeBytes = free
	}
	return stats
}

// Handle is one request's private scratch directory. Release is safe
// to call multiple times and from deferred paths.
type Handle struct {
	dir   string
	retry filesystem.RetryConfig
	once  sync.Once
}

// Dir returns the workspace directory path.
func (h *Handle) Dir() string {
	return h.dir
}

// Path joins name onto the workspace directory.
func (h *Handle) Path(name string) string {
	return filepath.Join(h.dir, name)
}

// Release deletes the workspace and everything in it. Only the first
// call acts; later calls are no-ops.
func (h *Handle) Release() {
	h.once.Do(func() {
		if err := filesystem.RemoveAllWithRetry(h.dir, h.retry); err != nil {
			logging.Warn("Failed to release workspace %s: %v", h.dir, err)
			return
		}
		metrics.WorkspacesReleasedTotal.Inc()
		logging.Debug("Released workspace %s", h.dir)
	})
}
