package filesystem

import (
	"io/fs"
	"path/filepath"
	"syscall"
	"time"
)

// DirSize returns the total size in bytes of all regular files under
// root. Entries that disappear mid-walk are skipped rather than
// failing the whole walk, since scratch directories are removed
// concurrently.
func DirSize(root string) (int64, error) {
	start := time.Now()
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, infoErr := d.Info(); infoErr == nil {
				total += info.Size()
			}
		}
		return nil
	})
	observeOperation("size", time.Since(start).Seconds(), err)
	return total, err
}

// DiskFree returns the number of bytes available to unprivileged users
// on the filesystem containing path.
func DiskFree(path string) (int64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
