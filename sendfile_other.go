//go:build !linux
// +build !linux

package zerocopy

import "syscall"

// platformSendfile has no usable kernel counterpart here.
// The BSD and Darwin sendfile(2) only accept a socket as the destination,
// which never holds for a file sink, so every non-Linux build falls back.
func platformSendfile(outfd int, infd int, offset *int64, count int) (int, error) {
	return 0, syscall.ENOTSUP
}
