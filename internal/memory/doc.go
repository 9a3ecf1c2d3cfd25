// Package memory configures Go's runtime memory limit for containerized
// environments.
//
// # Overview
//
// When running in Kubernetes or other container orchestrators, Go
// applications can be OOM-killed if they exceed their memory limits.
// Unlike GOMAXPROCS, which Go automatically detects from cgroup CPU
// limits, GOMEMLIMIT must be configured explicitly.
//
// This service is a bad OOM citizen by nature: most of its memory lives
// outside the Go heap, in yt-dlp and ffmpeg subprocesses and in OS
// buffers for media files moving through the scratch directory. Setting
// GOMEMLIMIT to a slice of the container limit keeps the garbage
// collector from growing the heap into the room the toolchain needs.
//
// # Configuration
//
// Call [ConfigureFromEnv] early in main, before any significant
// allocations occur:
//
//	func main() {
//	    memory.ConfigureFromEnv()
//	    // ... rest of application
//	}
//
// # Environment Variables
//
//   - GOMEMLIMIT: Standard Go environment variable. If set, takes
//     precedence over all other configuration. Accepts values like
//     "400MiB" or "1GiB".
//
//   - MEMORY_LIMIT: Container memory limit in bytes. Typically set via
//     Kubernetes Downward API (see example below). This is the raw value
//     from which GOMEMLIMIT is calculated.
//
//   - MEMORY_RATIO: Fraction of MEMORY_LIMIT to use for the Go heap,
//     expressed as a decimal between 0.0 and 1.0. Default is 0.85.
//     Lower it when many concurrent jobs run ffmpeg at once.
//
// # Kubernetes Configuration
//
// To pass the container memory limit to the application, use the
// Kubernetes Downward API in the deployment manifest:
//
//	spec:
//	  containers:
//	  - name: media-clipper
//	    resources:
//	      limits:
//	        memory: "1Gi"
//	    env:
//	    - name: MEMORY_LIMIT
//	      valueFrom:
//	        resourceFieldRef:
//	          resource: limits.memory
//	    - name: MEMORY_RATIO
//	      value: "0.75"  # Optional, reserve 25% for yt-dlp and ffmpeg
//
// # How GOMEMLIMIT Works
//
// GOMEMLIMIT sets a soft memory limit for the Go runtime. When heap
// allocations approach this limit, the garbage collector runs more
// aggressively to try to stay under the limit.
//
// Important notes:
//
//   - GOMEMLIMIT is a soft limit, not a hard limit. Go may temporarily
//     exceed it if the GC cannot free memory fast enough.
//
//   - GOMEMLIMIT only affects Go heap allocations. It does not limit
//     memory used by mmap or child processes; the ratio exists exactly
//     to leave room for those.
//
//   - Setting GOMEMLIMIT too high risks OOM kills. Setting it too low
//     causes excessive GC overhead.
package memory
