/*
Package workers sizes and enforces the download concurrency limit.

# Sizing

When running in containers (Docker, Kubernetes, etc.), the number of
available CPUs may be limited by cgroup constraints. While Go 1.19+
automatically sets GOMAXPROCS based on container CPU limits, the
commonly used runtime.NumCPU() still returns the host machine's CPU
count:

	// Wrong: returns host CPUs, ignores container limit
	workers := runtime.NumCPU()

	// Correct: respects container limit in Go 1.19+
	workers := runtime.GOMAXPROCS(0)

A download job alternates between network-bound fetching and CPU-bound
transcoding, so the service sizes its gate with ForMixed, capped by the
configured maximum:

	gate := workers.NewGate(workers.ForMixed(cfg.MaxConcurrentJobs))

The DOWNLOAD_WORKERS environment variable overrides the computed count
for operators who know better than the heuristic.

# Enforcement

Gate is a slot-counting semaphore. Every download holds one slot from
metadata resolution through packaging; requests past the limit queue in
Acquire and give up when their context is canceled.
*/
package workers
