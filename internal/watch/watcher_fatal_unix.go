// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports whether an fsnotify error leaves the watcher
// unable to recover. On Linux these are the inotify resource-exhaustion
// errors: ENOSPC (fs.inotify.max_user_watches exceeded), EMFILE and ENFILE
// (file descriptor limits).
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
