package hashing

import (
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// TestFromHashIncremental tests that incremental updates produce the same
// digest as a one-shot hash.
func TestFromHashIncremental(t *testing.T) {
	hasher, err := FromHash[digest.Digest256](sha256.New())
	if err != nil {
		t.Fatal("unable to create hasher:", err)
	}
	hasher.Update([]byte("stream"))
	hasher.Update(nil)
	hasher.Update([]byte("kit"))
	result, err := hasher.Finish()
	if err != nil {
		t.Fatal("unable to finish hasher:", err)
	}
	if expected := digest.Digest256(sha256.Sum256([]byte("streamkit"))); result != expected {
		t.Error("incremental digest does not match one-shot digest")
	}
}

// TestFromHashSizeMismatch tests that mismatched digest sizes are rejected.
func TestFromHashSizeMismatch(t *testing.T) {
	if _, err := FromHash[digest.Digest256](sha512.New()); !status.Is(err, status.InvalidParameter) {
		t.Error("mismatched hash size accepted or rejected with wrong code:", err)
	}
	if _, err := FromHash[digest.Digest256](nil); !status.Is(err, status.InvalidParameter) {
		t.Error("nil hash accepted or rejected with wrong code:", err)
	}
}

// TestFinishTwice tests that finishing a hasher twice fails.
func TestFinishTwice(t *testing.T) {
	hasher, err := New[digest.Digest512](AlgorithmSHA512)
	if err != nil {
		t.Fatal("unable to create hasher:", err)
	}
	if _, err := hasher.Finish(); err != nil {
		t.Fatal("unable to finish hasher:", err)
	}
	if _, err := hasher.Finish(); !status.Is(err, status.InvalidParameter) {
		t.Error("second finish did not fail as expected:", err)
	}
}

// TestNew tests hasher creation by algorithm.
func TestNew(t *testing.T) {
	if _, err := New[digest.Digest128](AlgorithmXXH128); err != nil {
		t.Error("unable to create XXH128 hasher:", err)
	}
	if _, err := New[digest.Digest64](AlgorithmXXH3); err != nil {
		t.Error("unable to create XXH3 hasher:", err)
	}
	if _, err := New[digest.Digest256](AlgorithmBLAKE2b256); err != nil {
		t.Error("unable to create BLAKE2b-256 hasher:", err)
	}
	if _, err := New[digest.Digest64](AlgorithmSHA256); err == nil {
		t.Error("hasher created with mismatched digest size")
	}
	if _, err := New[digest.Digest256](AlgorithmDefault); err == nil {
		t.Error("hasher created for default algorithm")
	}
}

// TestXXH128Deterministic tests that XXH128 digests are deterministic and
// input-sensitive.
func TestXXH128Deterministic(t *testing.T) {
	compute := func(data string) digest.Digest128 {
		hasher, err := New[digest.Digest128](AlgorithmXXH128)
		if err != nil {
			t.Fatal("unable to create hasher:", err)
		}
		hasher.Update([]byte(data))
		result, err := hasher.Finish()
		if err != nil {
			t.Fatal("unable to finish hasher:", err)
		}
		return result
	}
	if compute("abc") != compute("abc") {
		t.Error("digest not deterministic")
	}
	if compute("abc") == compute("abd") {
		t.Error("digest not input-sensitive")
	}
}

// TestDiscard tests the no-op hasher.
func TestDiscard(t *testing.T) {
	hasher := Discard[digest.Digest256]()
	hasher.Update([]byte("ignored"))
	if result, err := hasher.Finish(); err != nil {
		t.Fatal("unable to finish discarding hasher:", err)
	} else if !result.IsZero() {
		t.Error("discarding hasher produced non-zero digest")
	}
}
