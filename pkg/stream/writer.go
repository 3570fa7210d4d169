package stream

import (
	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// Writer is a buffered writer over a Sink. It aggregates writes of arbitrary
// size into large sink writes, tracks the number of bytes submitted, and
// optionally feeds every byte that it writes to the sink to a hasher, finalizing
// the digest when the stream is ended.
//
// Writer is not safe for concurrent use. The sink is borrowed for the lifetime
// of the writer and must outlive it. Callers should defer Close (or
// must.Close) to ensure that buffered data reaches the sink even on early
// return paths.
type Writer[D digest.Value] struct {
	// sink is the underlying sink.
	sink Sink
	// hasher is the hasher fed with sink bytes. It is nil if digesting is
	// disabled.
	hasher hashing.Hasher[D]
	// buffer is the write-behind buffer. Its capacity is the buffer capacity
	// and its length is the number of unflushed bytes.
	buffer []byte
	// position is the number of bytes submitted by the caller.
	position uint64
	// ended indicates whether or not the stream has been successfully ended.
	ended bool
	// digest is the finalized digest. It is only valid once ended is true.
	digest D
	// err is any sink or hasher failure. Once set, all subsequent operations
	// fail with it.
	err error
}

// NewWriter creates a new writer over sink with the specified buffer capacity.
// If hasher is nil, digesting is disabled. A capacity below 1 or a nil sink is
// rejected with status.InvalidParameter. No I/O is performed until the buffer
// needs flushing.
func NewWriter[D digest.Value](sink Sink, hasher hashing.Hasher[D], capacity int) (*Writer[D], error) {
	// Validate parameters.
	if sink == nil {
		return nil, status.New(status.InvalidParameter, "nil sink")
	} else if capacity < 1 {
		return nil, status.Errorf(status.InvalidParameter, "invalid buffer capacity: %d", capacity)
	}

	// Create the writer.
	return &Writer[D]{
		sink:   sink,
		hasher: hasher,
		buffer: make([]byte, 0, capacity),
	}, nil
}

// emit hashes data and writes it to the sink, treating a short write as a
// failure.
func (w *Writer[D]) emit(data []byte) error {
	// Hash the data ahead of the sink write. If the write fails, the digest is
	// never finalized, so the hasher can't be observed in a state that doesn't
	// match the sink.
	if w.hasher != nil {
		w.hasher.Update(data)
	}

	// Perform the write.
	n, err := w.sink.Write(data)
	if err != nil {
		w.err = status.Wrap(err, status.CannotWrite, "unable to write to sink")
		return w.err
	} else if n != len(data) {
		w.err = status.Errorf(status.CannotWrite, "short write to sink: %d of %d bytes", n, len(data))
		return w.err
	}

	// Success.
	return nil
}

// flush writes any buffered data to the sink. An empty buffer doesn't
// generate a sink write.
func (w *Writer[D]) flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	if err := w.emit(w.buffer); err != nil {
		return err
	}
	w.buffer = w.buffer[:0]
	return nil
}

// WriteBytes appends data to the stream. If data fits in the remaining buffer
// space, it's copied into the buffer without any I/O. Otherwise the buffer is
// flushed, and then data is either buffered or, if it's at least as large as
// the buffer capacity, written directly to the sink. In the latter case the
// flushed buffer and data reach the sink (and hasher) as two separate writes,
// in order. On success the position advances by len(data).
func (w *Writer[D]) WriteBytes(data []byte) error {
	// Check for previous failures and misuse.
	if w.err != nil {
		return w.err
	} else if w.ended {
		return status.New(status.CannotWrite, "write after end of stream")
	}

	// Handle the case where data fits in the buffer.
	if len(data) <= cap(w.buffer)-len(w.buffer) {
		w.buffer = append(w.buffer, data...)
		w.position += uint64(len(data))
		return nil
	}

	// Otherwise flush the buffer and either bypass it or buffer the data.
	if err := w.flush(); err != nil {
		return err
	}
	if len(data) >= cap(w.buffer) {
		if err := w.emit(data); err != nil {
			return err
		}
	} else {
		w.buffer = append(w.buffer, data...)
	}

	// Update the position.
	w.position += uint64(len(data))

	// Success.
	return nil
}

// Write implements io.Writer.Write.
func (w *Writer[D]) Write(data []byte) (int, error) {
	if err := w.WriteBytes(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Flush implements Flusher.Flush. It writes any buffered data to the sink
// without ending the stream.
func (w *Writer[D]) Flush() error {
	if w.err != nil {
		return w.err
	} else if w.ended {
		return nil
	}
	return w.flush()
}

// End flushes any buffered data to the sink and finalizes the hasher. Once End
// has succeeded, further calls are no-ops that return nil, while writes fail
// with status.CannotWrite. If flushing fails, the failure is sticky: the
// digest is never finalized and every later call returns the same error.
func (w *Writer[D]) End() error {
	// Check for previous failures and completion.
	if w.err != nil {
		return w.err
	} else if w.ended {
		return nil
	}

	// Flush buffered data.
	if err := w.flush(); err != nil {
		return err
	}

	// Finalize the hasher.
	if w.hasher != nil {
		result, err := w.hasher.Finish()
		if err != nil {
			code := status.CodeOf(err)
			if code == status.Unknown {
				code = status.InvalidParameter
			}
			w.err = status.Wrap(err, code, "unable to finalize digest")
			return w.err
		}
		w.digest = result
	}

	// Mark the stream as ended.
	w.ended = true

	// Success.
	return nil
}

// Close implements io.Closer.Close. It ends the stream if it hasn't already
// been ended, so that deferred cleanup still delivers buffered data. It does
// not close the sink, which is owned by the caller.
func (w *Writer[D]) Close() error {
	return w.End()
}

// Position returns the number of bytes submitted by the caller, which may
// exceed the number of bytes that have reached the sink.
func (w *Writer[D]) Position() uint64 {
	return w.position
}

// Buffered returns the number of bytes waiting in the write-behind buffer.
func (w *Writer[D]) Buffered() int {
	return len(w.buffer)
}

// Ended returns whether or not the stream has been successfully ended.
func (w *Writer[D]) Ended() bool {
	return w.ended
}

// Digest returns the digest of every byte written to the sink. It is only
// meaningful after a successful End; before that (or without a hasher) it
// returns the zero digest. Use CheckedDigest to distinguish these cases.
func (w *Writer[D]) Digest() D {
	return w.digest
}

// CheckedDigest returns the digest of every byte written to the sink. It fails
// with status.NotInitialized if the writer was created without a hasher and
// with status.NotReady if the stream hasn't been successfully ended.
func (w *Writer[D]) CheckedDigest() (D, error) {
	if w.hasher == nil {
		var zero D
		return zero, status.New(status.NotInitialized, "writer not configured for digesting")
	} else if !w.ended {
		var zero D
		return zero, status.New(status.NotReady, "stream has not ended")
	}
	return w.digest, nil
}
