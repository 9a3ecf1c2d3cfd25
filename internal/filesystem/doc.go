// Package filesystem provides filesystem helpers hardened for network
// storage, plus scratch volume accounting.
//
// # NFS Retry Logic
//
// Scratch space may live on NFS, where a server-side restart or export
// change surfaces as ESTALE (stale file handle) on otherwise valid
// paths. The *WithRetry functions wrap the corresponding os calls and
// retry only on ESTALE, with exponential backoff:
//
//	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
//
// Any other error is returned immediately; ordinary local filesystems
// never pay a retry penalty.
//
// # Volume Accounting
//
// DirSize walks a directory tree and totals regular file sizes,
// tolerating entries that vanish mid-walk. DiskFree reports the bytes
// available on the volume containing a path. Both feed the scratch
// storage gauges.
//
// # Metrics
//
// Operations report to an Observer interface rather than to the
// metrics package directly, which keeps the dependency one-way. Wire
// the Prometheus implementation at startup:
//
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
package filesystem
