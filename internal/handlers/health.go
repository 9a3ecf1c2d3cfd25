package handlers

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"media-clipper/internal/filesystem"
	"media-clipper/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// minScratchFreeBytes is the disk headroom below which the service
// reports degraded. A single fetch can need hundreds of megabytes.
const minScratchFreeBytes = 256 << 20

// HealthResponse contains the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`

	// Scratch storage summary
	ActiveWorkspaces int   `json:"activeWorkspaces"`
	ScratchBytes     int64 `json:"scratchBytes"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. Any failing
// check degrades the status and turns the response into a 503 so load
// balancers stop routing new work here.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	checks := make(map[string]string)
	healthy := true

	record := func(name string, err error) {
		if err != nil {
			checks[name] = err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	record("scratch", h.checkScratch())
	record("disk", h.checkDisk())

	_, err := exec.LookPath(h.cfg.YtDlpPath)
	record("yt-dlp", err)
	_, err = exec.LookPath(h.cfg.FFmpegPath)
	record("ffmpeg", err)

	stats := h.spaces.GetStats()

	response := HealthResponse{
		Service:          serviceName,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Version:          startup.Version,
		Uptime:           time.Since(h.startTime).Round(time.Second).String(),
		Checks:           checks,
		ActiveWorkspaces: stats.ActiveWorkspaces,
		ScratchBytes:     stats.ScratchBytes,
		GoVersion:        runtime.Version(),
		NumCPU:           runtime.NumCPU(),
		NumGoroutine:     runtime.NumGoroutine(),
	}

	w.Header().Set("Content-Type", "application/json")

	if healthy {
		response.Status = statusHealthy
		w.WriteHeader(http.StatusOK)
	} else {
		response.Status = statusDegraded
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the service can accept work,
// which for this service means the scratch directory is writable.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.checkScratch(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	writeJSON(w, map[string]string{
		"status": "ready",
	})
}

// checkScratch verifies the scratch root is still writable. Mounts can
// go read-only underneath a running service.
func (h *Handlers) checkScratch() error {
	probe := filepath.Join(h.spaces.Root(), ".health-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

func (h *Handlers) checkDisk() error {
	free, err := filesystem.DiskFree(h.spaces.Root())
	if err != nil {
		return err
	}
	if free < minScratchFreeBytes {
		return fmt.Errorf("only %d MiB free", free>>20)
	}
	return nil
}
