//go:build !linux
// +build !linux

package zerocopy

import "syscall"

// platformSplice has no kernel counterpart here. ENOTSUP tells Splice to
// serve the call with Buffered.
func platformSplice(rfd int, roff *int64, wfd int, woff *int64, len int, flags int) (int, error) {
	return 0, syscall.ENOTSUP
}
