package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/streamkit-io/streamkit/pkg/filesystem"
)

// writeContentFile writes data to a temporary file and returns its path.
func writeContentFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal("unable to write content file:", err)
	}
	return path
}

// openContentFile opens a file source for path.
func openContentFile(t *testing.T, path string) *filesystem.FileSource {
	t.Helper()
	file, err := filesystem.OpenSource(path)
	if err != nil {
		t.Fatal("unable to open content file:", err)
	}
	return file
}
