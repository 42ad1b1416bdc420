//go:build linux
// +build linux

package zerocopy

import (
	"golang.org/x/sys/unix"
)

// platformSplice issues one splice(2) call. The kernel hands back -1 on
// failure; callers get a zero count with the errno instead.
func platformSplice(rfd int, roff *int64, wfd int, woff *int64, len int, flags int) (int, error) {
	n, err := unix.Splice(rfd, roff, wfd, woff, len, flags)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
