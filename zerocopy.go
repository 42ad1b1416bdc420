// Package zerocopy drains a byte stream from one file descriptor into
// another with kernel zero-copy primitives. It offers splice(2) and
// sendfile(2) backed transfers on Linux, with a pooled read/write fallback
// on platforms that lack them.
//
// Key features:
//   - Drain loop that repeats a single primitive until a short transfer
//   - Per-call accounting (bytes moved, number of kernel calls)
//   - Pluggable Transferer so the loop is independent of the syscall
//   - Graceful fallback to userspace copies off Linux
//
// Termination:
//
//	The loop keeps calling the primitive while each call moves exactly
//	the chunk size. An input whose length is a positive multiple of the
//	chunk size therefore costs one extra call that returns zero bytes.
//	That extra call is counted.
//
// Thread Safety:
//
//	A Drain holds no per-run state and may be shared. The fallback
//	buffer pool is safe for concurrent use. A single Source or Sink must
//	not be drained from two goroutines at once.
//
// Platform Support:
//   - Splice, Sendfile: Linux 2.6.33+ (ENOTSUP stub and buffered fallback elsewhere)
//   - Buffered: cross-platform
package zerocopy

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// BlockSize is the number of bytes requested from the kernel per call (1MB).
	BlockSize = 1 << 20

	// OutputPerm is the mode the destination file is created with, before umask.
	OutputPerm os.FileMode = 0644
)

var (
	// ErrInvalidChunkSize is returned by Drain.Run when ChunkSize is negative.
	ErrInvalidChunkSize = errors.New("zerocopy: invalid chunk size")

	// ErrUnknownTransferer is returned by Lookup for an unregistered name.
	ErrUnknownTransferer = errors.New("zerocopy: unknown transferer")
)

// Source is the readable end of a drain. *os.File satisfies it.
type Source interface {
	io.Reader
	Fd() uintptr
}

// Sink is the writable end of a drain. *os.File satisfies it.
type Sink interface {
	io.Writer
	Fd() uintptr
}

// Transferer moves up to max bytes from src to dst in a single call.
//
// A successful call returns 0 <= n <= max. A short count means the source
// had nothing more to give at that moment; zero means end of stream.
// Implementations must not retry on their own beyond restarting an
// interrupted system call.
type Transferer interface {
	// Name identifies the primitive in reports, e.g. "splice".
	Name() string
	Transfer(dst Sink, src Source, max int) (int, error)
}

// transferers holds the primitives Lookup can resolve.
var transferers = map[string]Transferer{
	Splice.Name():   Splice,
	Sendfile.Name(): Sendfile,
	Buffered.Name(): Buffered,
}

// Lookup returns the Transferer registered under name.
// Known names are "splice", "sendfile" and "buffered".
func Lookup(name string) (Transferer, error) {
	t, ok := transferers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransferer, name)
	}
	return t, nil
}

// OpenError reports that the destination file could not be created.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// TransferError reports a failed primitive call. Iter is the 0-indexed
// iteration of the drain loop that failed, which is also the number of
// calls that succeeded before it.
type TransferError struct {
	Op   string
	Iter int
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s (iter %d) failed: %v", e.Op, e.Iter, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Create opens path for writing with truncate-or-create semantics and
// OutputPerm. The returned file is the caller's to close.
func Create(path string) (*os.File, error) {
	// #nosec G304 -- the output path is the whole point of the tool
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputPerm)
	if err != nil {
		return nil, &OpenError{Path: path, Err: unwrapPathError(err)}
	}
	return f, nil
}

// unwrapPathError strips the *os.PathError layer so messages carry the
// bare OS error text once.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
