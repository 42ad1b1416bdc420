package zerocopy

import (
	"errors"
	"io"
	"sync"
	"syscall"
)

// Kernel zero-copy primitives.
//
// Splice and Sendfile hand the descriptors straight to the kernel. On
// platforms without the syscall the platform stub returns syscall.ENOTSUP
// and the call is served by Buffered instead, so the drain loop sees the
// same short-count contract everywhere.

var (
	// Splice moves data with splice(2). At least one of the two
	// descriptors must refer to a pipe.
	Splice Transferer = spliceTransfer{}

	// Sendfile moves data with sendfile(2). The source must support
	// mmap-like reads (a regular file on most kernels).
	Sendfile Transferer = sendfileTransfer{}

	// Buffered copies through a pooled userspace buffer. It is the fallback
	// where neither kernel primitive exists.
	Buffered Transferer = bufferedTransfer{}
)

type spliceTransfer struct{}

func (spliceTransfer) Name() string { return "splice" }

func (spliceTransfer) Transfer(dst Sink, src Source, max int) (int, error) {
	n, err := retryEINTR(func() (int, error) {
		return platformSplice(int(src.Fd()), nil, int(dst.Fd()), nil, max, 0)
	})
	if err == syscall.ENOTSUP {
		return Buffered.Transfer(dst, src, max)
	}
	return n, err
}

type sendfileTransfer struct{}

func (sendfileTransfer) Name() string { return "sendfile" }

func (sendfileTransfer) Transfer(dst Sink, src Source, max int) (int, error) {
	n, err := retryEINTR(func() (int, error) {
		return platformSendfile(int(dst.Fd()), int(src.Fd()), nil, max)
	})
	if err == syscall.ENOTSUP {
		return Buffered.Transfer(dst, src, max)
	}
	return n, err
}

// retryEINTR restarts fn while the kernel reports an interrupted call.
// Go's runtime delivers preemption signals that can land mid-syscall.
func retryEINTR(fn func() (int, error)) (int, error) {
	for {
		n, err := fn()
		if err != syscall.EINTR {
			return n, err
		}
	}
}

// chunkPool stores reusable BlockSize byte slices for the buffered path.
var chunkPool = sync.Pool{
	New: func() any {
		b := make([]byte, BlockSize)
		return &b
	},
}

type bufferedTransfer struct{}

func (bufferedTransfer) Name() string { return "buffered" }

// Transfer reads up to max bytes from src and then writes them to dst.
// The whole request is read into pooled BlockSize chunks before anything
// is written, so a failed read leaves dst untouched. A read that ends
// early because src hit end of stream is a short transfer. Like a kernel
// primitive, a write that fails after some bytes landed reports those
// bytes as a short transfer; an error is only returned when nothing moved.
func (bufferedTransfer) Transfer(dst Sink, src Source, max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}

	var held []*[]byte
	defer func() {
		for _, bufp := range held {
			chunkPool.Put(bufp)
		}
	}()

	var filled [][]byte
	for remaining := max; remaining > 0; {
		bufp := chunkPool.Get().(*[]byte)
		held = append(held, bufp)
		buf := *bufp

		want := remaining
		if want > len(buf) {
			want = len(buf)
		}

		nr, readErr := io.ReadFull(src, buf[:want])
		filled = append(filled, buf[:nr])
		remaining -= nr

		if readErr != nil {
			if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
				break
			}
			return 0, readErr
		}
	}

	total := 0
	for _, p := range filled {
		if len(p) == 0 {
			continue
		}
		nw, writeErr := dst.Write(p)
		total += nw
		if writeErr == nil && nw != len(p) {
			writeErr = io.ErrShortWrite
		}
		if writeErr != nil {
			if total > 0 {
				return total, nil
			}
			return 0, writeErr
		}
	}
	return total, nil
}
