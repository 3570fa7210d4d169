package stream

import (
	"io"

	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/status"
)

const (
	// DefaultBufferSize is the default buffer capacity for readers and
	// writers.
	DefaultBufferSize = 64 * 1024
)

// Reader is a buffered reader over a Source. It serves reads of arbitrary size
// out of a buffer of the configured capacity (grown only to stage values that
// don't fit), tracks the number of bytes consumed, detects the end of the
// stream, and optionally feeds every byte that it pulls from the source to a
// hasher, finalizing the digest exactly once when the stream ends.
//
// Whenever a read exhausts the buffer, the reader immediately refills it from
// the source so that the end of the stream is observed as early as possible.
// This read-ahead happens inside the call that consumed the last buffered byte,
// so with an interactive source (such as a socket) a read whose data is already
// buffered can still block until the peer sends more data or closes its side
// of the connection. Peers exchanging messages over a single connection should
// signal the end of each direction (e.g. via CloseWrite) rather than waiting for
// a reply mid-stream.
//
// Reader is not safe for concurrent use. The source is borrowed for the
// lifetime of the reader and must outlive it.
type Reader[D digest.Value] struct {
	// source is the underlying source.
	source Source
	// hasher is the hasher fed with source bytes. It is nil if digesting is
	// disabled.
	hasher hashing.Hasher[D]
	// buffer is the read-ahead buffer. Its length is the buffer capacity.
	buffer []byte
	// cursor is the index of the first unconsumed byte in buffer.
	cursor int
	// extent is the index one past the last valid byte in buffer.
	extent int
	// sourceEnded indicates whether or not the source has signaled the end of
	// data.
	sourceEnded bool
	// ended indicates whether or not the stream has ended, i.e. the source has
	// ended and all buffered bytes have been consumed.
	ended bool
	// position is the number of bytes consumed by the caller.
	position uint64
	// digest is the finalized digest. It is only valid once ended is true.
	digest D
	// digestErr is any error that occurred while finalizing the hasher.
	digestErr error
	// err is any source failure. Once set, all subsequent reads fail with it.
	err error
}

// NewReader creates a new reader over source with the specified buffer
// capacity and performs the initial buffer fill. If hasher is nil, digesting is
// disabled and Digest will fail with status.NotInitialized. A capacity below 1
// or a nil source is rejected with status.InvalidParameter. Failure of the
// initial fill is returned to the caller.
func NewReader[D digest.Value](source Source, hasher hashing.Hasher[D], capacity int) (*Reader[D], error) {
	// Validate parameters.
	if source == nil {
		return nil, status.New(status.InvalidParameter, "nil source")
	} else if capacity < 1 {
		return nil, status.Errorf(status.InvalidParameter, "invalid buffer capacity: %d", capacity)
	}

	// Create the reader.
	reader := &Reader[D]{
		source: source,
		hasher: hasher,
		buffer: make([]byte, capacity),
	}

	// Perform the initial fill.
	if err := reader.fill(); err != nil {
		return nil, err
	}

	// Success.
	return reader, nil
}

// fill compacts any unconsumed bytes to the front of the buffer and then asks
// the source to fill the remainder of the buffer in a single call. Bytes read
// from the source are fed to the hasher immediately.
func (r *Reader[D]) fill() error {
	// Compact unconsumed bytes.
	if r.cursor > 0 {
		r.extent = copy(r.buffer, r.buffer[r.cursor:r.extent])
		r.cursor = 0
	}

	// If the source has already ended or there's no room, then there's
	// nothing to read.
	if !r.sourceEnded && r.extent < len(r.buffer) {
		// Read from the source.
		target := r.buffer[r.extent:]
		n, err := r.source.Read(target)
		if err != nil {
			r.err = status.Wrap(err, status.CannotRead, "unable to read from source")
			return r.err
		} else if n < 0 || n > len(target) {
			r.err = status.Errorf(status.CannotRead, "source returned invalid count: %d", n)
			return r.err
		}

		// Record the end of data or incorporate the new bytes.
		if n == 0 {
			r.sourceEnded = true
		} else {
			if r.hasher != nil {
				r.hasher.Update(target[:n])
			}
			r.extent += n
		}
	}

	// Check whether or not this fill ended the stream.
	r.checkEnded()

	// Success.
	return nil
}

// checkEnded transitions the reader to the ended state if the source has ended
// and the buffer is exhausted, finalizing the hasher exactly once at that
// transition.
func (r *Reader[D]) checkEnded() {
	if r.ended || !r.sourceEnded || r.cursor != r.extent {
		return
	}
	r.ended = true
	if r.hasher != nil {
		r.digest, r.digestErr = r.hasher.Finish()
	}
}

// settle reads ahead if the caller has exhausted the buffer, so that the end
// of the stream is detected as early as possible, and otherwise checks for the
// end of the stream. A read-ahead failure is recorded and reported by the next
// operation rather than by the one that already succeeded.
func (r *Reader[D]) settle() {
	if r.cursor == r.extent && !r.sourceEnded {
		r.fill()
	} else {
		r.checkEnded()
	}
}

// ReadBytes reads exactly len(destination) bytes from the stream, refilling the
// buffer from the source as many times as necessary. It is all-or-nothing: if
// the stream ends before destination is filled, it fails with
// status.CannotRead and the position is not advanced. In that case the
// remaining stream bytes will have been drained into destination, so the
// stream will have ended, but the contents of destination must not be trusted.
func (r *Reader[D]) ReadBytes(destination []byte) error {
	// Check for previous failures.
	if r.err != nil {
		return r.err
	}

	// Copy data, refilling as needed.
	remaining := destination
	for len(remaining) > 0 {
		if r.cursor == r.extent {
			if r.sourceEnded {
				r.checkEnded()
				return status.Errorf(status.CannotRead,
					"stream ended %d bytes short of %d byte read", len(remaining), len(destination),
				)
			} else if err := r.fill(); err != nil {
				return err
			}
			continue
		}
		n := copy(remaining, r.buffer[r.cursor:r.extent])
		r.cursor += n
		remaining = remaining[n:]
	}

	// Update the position and read ahead if necessary.
	r.position += uint64(len(destination))
	r.settle()

	// Success.
	return nil
}

// Read implements io.Reader.Read. Unlike ReadBytes, it performs partial reads
// and returns io.EOF once the stream has ended.
func (r *Reader[D]) Read(buffer []byte) (int, error) {
	// Handle degenerate and terminal cases.
	if len(buffer) == 0 {
		return 0, nil
	} else if r.err != nil {
		return 0, r.err
	}

	// Ensure that data is available.
	for r.cursor == r.extent {
		if r.sourceEnded {
			return 0, io.EOF
		} else if err := r.fill(); err != nil {
			return 0, err
		}
	}

	// Copy out what we have.
	n := copy(buffer, r.buffer[r.cursor:r.extent])
	r.cursor += n
	r.position += uint64(n)
	r.settle()
	return n, nil
}

// grow enlarges the buffer to hold at least count bytes, preserving any
// unconsumed bytes at the front of the new buffer.
func (r *Reader[D]) grow(count int) {
	if count <= len(r.buffer) {
		return
	}
	buffer := make([]byte, count)
	r.extent = copy(buffer, r.buffer[r.cursor:r.extent])
	r.cursor = 0
	r.buffer = buffer
}

// ensure attempts to make at least count bytes available in the buffer without
// consuming them. If count exceeds the buffer capacity, the buffer is grown to
// count bytes first. It returns false if the stream ends first.
func (r *Reader[D]) ensure(count int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.grow(count)
	for r.extent-r.cursor < count {
		if r.err != nil {
			return false, r.err
		} else if r.sourceEnded {
			return false, nil
		} else if err := r.fill(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Ended returns whether or not the stream has ended. A stream ends once the
// source has signaled the end of data and every buffered byte has been
// consumed. A stream with unconsumed buffered bytes has not ended even if its
// source has.
func (r *Reader[D]) Ended() bool {
	return r.ended
}

// Position returns the number of bytes consumed by the caller. Bytes held in
// the read-ahead buffer aren't counted.
func (r *Reader[D]) Position() uint64 {
	return r.position
}

// Buffered returns the number of bytes currently held in the read-ahead buffer.
func (r *Reader[D]) Buffered() int {
	return r.extent - r.cursor
}

// Digest returns the digest of every byte emitted by the source. It fails with
// status.NotInitialized if the reader was created without a hasher and with
// status.NotReady if the stream hasn't yet ended.
func (r *Reader[D]) Digest() (D, error) {
	if r.hasher == nil {
		var zero D
		return zero, status.New(status.NotInitialized, "reader not configured for digesting")
	} else if !r.ended {
		var zero D
		return zero, status.New(status.NotReady, "stream has not ended")
	}
	return r.digest, r.digestErr
}
