// Package hashing provides the incremental hasher abstraction used by
// streamkit streams, along with the set of supported hashing algorithms.
package hashing

import (
	"hash"

	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// Hasher is an incremental hash function producing digests of type D. A
// Hasher accepts zero or more calls to Update followed by exactly one call to
// Finish. Hashers are not safe for concurrent use.
type Hasher[D digest.Value] interface {
	// Update feeds data to the hash function. Zero-length updates are no-ops.
	Update(data []byte)
	// Finish finalizes the hash function and returns the digest. It may be
	// called at most once.
	Finish() (D, error)
}

// hashHasher adapts a hash.Hash to the Hasher interface.
type hashHasher[D digest.Value] struct {
	// hash is the underlying hash function.
	hash hash.Hash
	// finished indicates whether or not Finish has been called.
	finished bool
}

// FromHash adapts a standard library hash function to the Hasher interface.
// The hash function's output size must match the size of D.
func FromHash[D digest.Value](h hash.Hash) (Hasher[D], error) {
	if h == nil {
		return nil, status.New(status.InvalidParameter, "nil hash function")
	} else if size := digest.Size[D](); h.Size() != size {
		return nil, status.Errorf(status.InvalidParameter,
			"hash output size (%d) does not match digest size (%d)", h.Size(), size,
		)
	}
	return &hashHasher[D]{hash: h}, nil
}

// Update implements Hasher.Update.
func (h *hashHasher[D]) Update(data []byte) {
	if len(data) == 0 {
		return
	}

	// Writes to a hash.Hash never fail.
	h.hash.Write(data)
}

// Finish implements Hasher.Finish.
func (h *hashHasher[D]) Finish() (D, error) {
	if h.finished {
		var zero D
		return zero, status.New(status.InvalidParameter, "hasher already finished")
	}
	h.finished = true
	return digest.FromBytes[D](h.hash.Sum(nil))
}

// New creates a hasher for the specified algorithm. The algorithm's digest
// size must match the size of D.
func New[D digest.Value](algorithm Algorithm) (Hasher[D], error) {
	if !algorithm.Supported() {
		return nil, status.Errorf(status.InvalidParameter, "unsupported hashing algorithm: %s", algorithm)
	}
	return FromHash[D](algorithm.Factory()())
}

// discard is the no-op Hasher implementation underlying Discard.
type discard[D digest.Value] struct{}

// Discard returns a hasher that ignores its input and finishes with the zero
// digest. It allows digest-aware code paths to run without paying for a hash
// function.
func Discard[D digest.Value]() Hasher[D] {
	return discard[D]{}
}

// Update implements Hasher.Update.
func (discard[D]) Update(_ []byte) {}

// Finish implements Hasher.Finish.
func (discard[D]) Finish() (D, error) {
	var zero D
	return zero, nil
}
