package encoding

import (
	"github.com/eknkc/basex"
	"github.com/pkg/errors"
)

const (
	// Base62Alphabet is the alphabet used for Base62 encoding.
	Base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// base62 is the Base62 encoder. It is safe for concurrent use. Leading zero
// bytes are preserved as leading zero digits, so decoding is lossless.
var base62 = mustNewBase62()

// mustNewBase62 constructs the Base62 encoder, panicking on an invalid
// alphabet.
func mustNewBase62() *basex.Encoding {
	encoding, err := basex.NewEncoding(Base62Alphabet)
	if err != nil {
		panic("invalid Base62 alphabet")
	}
	return encoding
}

// EncodeBase62 performs Base62 encoding.
func EncodeBase62(value []byte) string {
	return base62.Encode(value)
}

// DecodeBase62 performs Base62 decoding.
func DecodeBase62(value string) ([]byte, error) {
	result, err := base62.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Base62 data")
	}
	return result, nil
}

// DecodeBase62Length performs Base62 decoding and verifies that the decoded
// value has the expected length.
func DecodeBase62Length(value string, length int) ([]byte, error) {
	result, err := DecodeBase62(value)
	if err != nil {
		return nil, err
	} else if len(result) != length {
		return nil, errors.Errorf("decoded length mismatch: %d != %d", len(result), length)
	}
	return result, nil
}
