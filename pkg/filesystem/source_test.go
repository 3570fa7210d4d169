package filesystem

import (
	"bytes"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

// TestFileSourceReader tests reading a file through a buffered reader.
func TestFileSourceReader(t *testing.T) {
	// Create a test file.
	contents := bytes.Repeat([]byte("streamkit"), 1000)
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatal("unable to write test file:", err)
	}

	// Open the source.
	source, err := OpenSource(path)
	if err != nil {
		t.Fatal("unable to open source:", err)
	}
	defer source.Close()
	if source.Size() != int64(len(contents)) {
		t.Error("unexpected source size:", source.Size())
	}
	if source.Mode() != 0600 {
		t.Error("unexpected source mode:", source.Mode())
	}

	// Read through a buffered reader.
	hasher, err := hashing.New[digest.Digest256](hashing.AlgorithmSHA256)
	if err != nil {
		t.Fatal("unable to create hasher:", err)
	}
	reader, err := stream.NewReader(source, hasher, 1024)
	if err != nil {
		t.Fatal("unable to create reader:", err)
	}
	data := make([]byte, len(contents))
	if err := reader.ReadBytes(data); err != nil {
		t.Fatal("unable to read file:", err)
	} else if !bytes.Equal(data, contents) {
		t.Error("file data mismatch")
	}
	if !reader.Ended() {
		t.Error("reader not ended at end of file")
	}
	if result, err := reader.Digest(); err != nil {
		t.Fatal("unable to get digest:", err)
	} else if result != digest.Digest256(sha256.Sum256(contents)) {
		t.Error("digest mismatch")
	}
}

// TestOpenSourceDirectory tests that directories are rejected.
func TestOpenSourceDirectory(t *testing.T) {
	if _, err := OpenSource(t.TempDir()); err == nil {
		t.Error("directory opened as source")
	}
}

// TestOpenSourceMissing tests that missing files are rejected.
func TestOpenSourceMissing(t *testing.T) {
	if _, err := OpenSource(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing file opened as source")
	}
}
