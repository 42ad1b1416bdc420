package zerocopy

import (
	"github.com/sirupsen/logrus"
)

// State is the position of a drain in its lifecycle.
type State int

const (
	// Running is the initial state; the last call moved a full chunk.
	Running State = iota
	// Done is terminal: a call moved less than a full chunk.
	Done
	// Failed is terminal: a call returned an error.
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the accounting of one Drain.Run.
type Result struct {
	// Bytes is the sum of all successful per-call transfer counts.
	Bytes int64
	// Calls is the number of successful primitive calls, including the
	// final short or zero-length one.
	Calls int
	State State
}

// Drain empties a Source into a Sink by calling one Transferer
// repeatedly. The zero value is not usable; Transferer must be set.
type Drain struct {
	Transferer Transferer

	// ChunkSize is the byte count requested per call. Zero means BlockSize.
	ChunkSize int

	// Log receives one debug entry per call. Nil means the logrus
	// standard logger.
	Log logrus.FieldLogger
}

// Run calls the primitive until a call moves fewer than ChunkSize bytes
// or fails. The first failure stops the loop and is returned as a
// *TransferError together with the counts accumulated so far. Run does
// not close either descriptor.
func (d *Drain) Run(dst Sink, src Source) (Result, error) {
	chunk := d.ChunkSize
	if chunk == 0 {
		chunk = BlockSize
	}
	if chunk < 0 {
		return Result{State: Failed}, ErrInvalidChunkSize
	}

	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	op := d.Transferer.Name()
	log = log.WithField("op", op)

	var res Result
	for res.State == Running {
		n, err := d.Transferer.Transfer(dst, src, chunk)
		if err != nil {
			res.State = Failed
			log.WithError(err).WithField("iter", res.Calls).Debug("transfer failed")
			return res, &TransferError{Op: op, Iter: res.Calls, Err: err}
		}

		res.Bytes += int64(n)
		res.Calls++
		log.WithFields(logrus.Fields{
			"iter":  res.Calls - 1,
			"n":     n,
			"total": res.Bytes,
		}).Debug("transfer")

		// Only a full chunk keeps the loop going, so a source that ends on
		// a chunk boundary costs one more call that returns zero.
		if n != chunk {
			res.State = Done
		}
	}

	log.WithFields(logrus.Fields{
		"bytes": res.Bytes,
		"calls": res.Calls,
	}).Debug("drain finished")
	return res, nil
}
