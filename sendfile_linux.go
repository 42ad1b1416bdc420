//go:build linux
// +build linux

package zerocopy

import (
	"golang.org/x/sys/unix"
)

// platformSendfile issues one sendfile(2) call.
// A nil offset reads from, and advances, the source's file position.
func platformSendfile(outfd int, infd int, offset *int64, count int) (int, error) {
	n, err := unix.Sendfile(outfd, infd, offset, count)
	if err != nil {
		return 0, err
	}
	return n, nil
}
