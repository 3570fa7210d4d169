// Package digest provides fixed-size digest values. Digests are byte arrays
// that compare and order most-significant-byte first and convert to and from
// lowercase hexadecimal strings of exactly twice their byte length.
package digest

import (
	"bytes"
	"encoding/hex"

	"github.com/streamkit-io/streamkit/pkg/encoding"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// Digest64 is a 64-bit digest.
type Digest64 [8]byte

// Digest128 is a 128-bit digest.
type Digest128 [16]byte

// Digest256 is a 256-bit digest.
type Digest256 [32]byte

// Digest512 is a 512-bit digest.
type Digest512 [64]byte

// Value is the constraint satisfied by all digest types.
type Value interface {
	Digest64 | Digest128 | Digest256 | Digest512
}

// Size returns the byte length of the digest type D.
func Size[D Value]() int {
	var d D
	return len(bytesOf(&d))
}

// bytesOf returns a slice aliasing the storage of d.
func bytesOf[D Value](d *D) []byte {
	switch v := any(d).(type) {
	case *Digest64:
		return v[:]
	case *Digest128:
		return v[:]
	case *Digest256:
		return v[:]
	case *Digest512:
		return v[:]
	default:
		panic("unhandled digest type")
	}
}

// Bytes returns a copy of the digest's bytes.
func Bytes[D Value](d D) []byte {
	return append([]byte(nil), bytesOf(&d)...)
}

// FromBytes converts a byte slice to a digest. It fails if the length of data
// doesn't match the digest size.
func FromBytes[D Value](data []byte) (D, error) {
	var result D
	target := bytesOf(&result)
	if len(data) != len(target) {
		return result, status.Errorf(status.InvalidParameter,
			"digest length mismatch: %d != %d", len(data), len(target),
		)
	}
	copy(target, data)
	return result, nil
}

// Parse decodes a digest from its hexadecimal representation. Both upper and
// lower case digits are accepted, but the text must be exactly twice the
// digest size in length.
func Parse[D Value](text string) (D, error) {
	var result D
	target := bytesOf(&result)
	if len(text) != 2*len(target) {
		return result, status.Errorf(status.InvalidParameter,
			"invalid digest text length: %d != %d", len(text), 2*len(target),
		)
	}
	if _, err := hex.Decode(target, []byte(text)); err != nil {
		return result, status.Wrap(err, status.InvalidParameter, "invalid digest text")
	}
	return result, nil
}

// ParseBase62 decodes a digest from its Base62 representation.
func ParseBase62[D Value](text string) (D, error) {
	var result D
	target := bytesOf(&result)
	data, err := encoding.DecodeBase62Length(text, len(target))
	if err != nil {
		return result, status.Wrap(err, status.InvalidParameter, "invalid digest text")
	}
	copy(target, data)
	return result, nil
}

// Compare compares two digests most-significant-byte first, returning -1, 0,
// or 1.
func Compare[D Value](a, b D) int {
	return bytes.Compare(bytesOf(&a), bytesOf(&b))
}

// Hex returns the lowercase hexadecimal representation of a digest.
func Hex[D Value](d D) string {
	return hex.EncodeToString(bytesOf(&d))
}

// Base62 returns the Base62 representation of a digest.
func Base62[D Value](d D) string {
	return encoding.EncodeBase62(bytesOf(&d))
}

// IsZero returns whether or not all digest bytes are zero.
func IsZero[D Value](d D) bool {
	var zero D
	return d == zero
}
