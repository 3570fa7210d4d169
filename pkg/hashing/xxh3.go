package hashing

import (
	"encoding/binary"
	"hash"

	"github.com/zeebo/xxh3"
)

// xxh3Hash implements hash.Hash using the 64-bit XXH3 algorithm.
type xxh3Hash struct {
	// Hasher is the underlying hasher.
	*xxh3.Hasher
}

// newXXH3 returns a new 64-bit XXH3 hash.
func newXXH3() hash.Hash {
	return &xxh3Hash{xxh3.New()}
}

// Size implements hash.Hash.Size.
func (h *xxh3Hash) Size() int {
	return 8
}

// Sum implements hash.Hash.Sum. The digest is encoded big-endian.
func (h *xxh3Hash) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, h.Sum64())
}

// xxh128Hash implements hash.Hash using the XXH128 algorithm.
type xxh128Hash struct {
	// Hasher is the underlying hasher.
	*xxh3.Hasher
}

// newXXH128 returns a new XXH128 hash.
func newXXH128() hash.Hash {
	return &xxh128Hash{xxh3.New()}
}

// Size implements hash.Hash.Size.
func (h *xxh128Hash) Size() int {
	return 16
}

// Sum implements hash.Hash.Sum.
func (h *xxh128Hash) Sum(b []byte) []byte {
	// Compute the sum and associated bytes.
	sum128 := h.Sum128()
	sum128Bytes := sum128.Bytes()

	// If b is nil, then take the fast way out.
	if b == nil {
		return sum128Bytes[:]
	}

	// Otherwise append the bytes to b.
	return append(b, sum128Bytes[:]...)
}
