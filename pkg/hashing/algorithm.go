package hashing

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/streamkit-io/streamkit/pkg/bimap"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// Algorithm identifies a hashing algorithm.
type Algorithm uint8

const (
	// AlgorithmDefault is the unset algorithm value. It resolves to
	// AlgorithmSHA256 when used as a configuration value.
	AlgorithmDefault Algorithm = iota
	// AlgorithmSHA256 is SHA-256.
	AlgorithmSHA256
	// AlgorithmSHA512 is SHA-512.
	AlgorithmSHA512
	// AlgorithmXXH3 is the 64-bit variant of XXH3.
	AlgorithmXXH3
	// AlgorithmXXH128 is the 128-bit variant of XXH3.
	AlgorithmXXH128
	// AlgorithmBLAKE2b256 is BLAKE2b with a 256-bit output.
	AlgorithmBLAKE2b256
	// AlgorithmBLAKE2b512 is BLAKE2b with a 512-bit output.
	AlgorithmBLAKE2b512
)

// algorithmNames maps algorithms to their textual specifications.
var algorithmNames = bimap.New[Algorithm, string]().
	MustInsert(AlgorithmSHA256, "sha256").
	MustInsert(AlgorithmSHA512, "sha512").
	MustInsert(AlgorithmXXH3, "xxh3").
	MustInsert(AlgorithmXXH128, "xxh128").
	MustInsert(AlgorithmBLAKE2b256, "blake2b-256").
	MustInsert(AlgorithmBLAKE2b512, "blake2b-512")

// Algorithms returns the supported algorithms in their canonical order.
func Algorithms() []Algorithm {
	return algorithmNames.Keys()
}

// IsDefault indicates whether or not the algorithm is AlgorithmDefault.
func (a Algorithm) IsDefault() bool {
	return a == AlgorithmDefault
}

// String returns the textual specification of the algorithm.
func (a Algorithm) String() string {
	if a == AlgorithmDefault {
		return "default"
	} else if name, ok := algorithmNames.ByKey(a); ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (a Algorithm) MarshalText() ([]byte, error) {
	var result string
	if a != AlgorithmDefault {
		result = a.String()
	}
	return []byte(result), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (a *Algorithm) UnmarshalText(textBytes []byte) error {
	// Convert the bytes to a string.
	text := string(textBytes)

	// Convert to a hashing algorithm.
	algorithm, ok := algorithmNames.ByValue(text)
	if !ok {
		return status.Errorf(status.InvalidParameter, "unknown hashing algorithm specification: %s", text)
	}
	*a = algorithm

	// Success.
	return nil
}

// Supported indicates whether or not a particular hashing algorithm is a valid,
// non-default value.
func (a Algorithm) Supported() bool {
	_, ok := algorithmNames.ByKey(a)
	return ok
}

// Description returns a human-readable description of a hashing algorithm.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmDefault:
		return "Default"
	case AlgorithmSHA256:
		return "SHA-256"
	case AlgorithmSHA512:
		return "SHA-512"
	case AlgorithmXXH3:
		return "XXH3"
	case AlgorithmXXH128:
		return "XXH128"
	case AlgorithmBLAKE2b256:
		return "BLAKE2b-256"
	case AlgorithmBLAKE2b512:
		return "BLAKE2b-512"
	default:
		return "Unknown"
	}
}

// Size returns the digest size of the algorithm in bytes, or 0 for default or
// invalid values.
func (a Algorithm) Size() int {
	switch a {
	case AlgorithmXXH3:
		return 8
	case AlgorithmXXH128:
		return 16
	case AlgorithmSHA256, AlgorithmBLAKE2b256:
		return 32
	case AlgorithmSHA512, AlgorithmBLAKE2b512:
		return 64
	default:
		return 0
	}
}

// Factory returns a constructor for the hashing algorithm. If invoked on a
// default or invalid Algorithm value, this method will panic.
func (a Algorithm) Factory() func() hash.Hash {
	switch a {
	case AlgorithmSHA256:
		return sha256.New
	case AlgorithmSHA512:
		return sha512.New
	case AlgorithmXXH3:
		return newXXH3
	case AlgorithmXXH128:
		return newXXH128
	case AlgorithmBLAKE2b256:
		return func() hash.Hash {
			// Construction can only fail for oversized keys.
			h, _ := blake2b.New256(nil)
			return h
		}
	case AlgorithmBLAKE2b512:
		return func() hash.Hash {
			h, _ := blake2b.New512(nil)
			return h
		}
	default:
		panic("default or unknown hashing algorithm")
	}
}
