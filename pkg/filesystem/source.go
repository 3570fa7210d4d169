// Package filesystem provides file-backed stream sources and sinks.
package filesystem

import (
	"os"

	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/stream"
)

// FileSource is a stream.Source that reads from a file.
type FileSource struct {
	// file is the underlying file.
	file *os.File
	// source adapts the file to the stream.Source contract.
	source stream.Source
	// size is the file size at the time of opening.
	size int64
	// mode is the file's permission bits.
	mode os.FileMode
}

// OpenSource opens the file at path for sequential reading.
func OpenSource(path string) (*FileSource, error) {
	// Open the file.
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open file")
	}

	// Ensure that it's a regular file and grab its size.
	metadata, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "unable to query file metadata")
	} else if !metadata.Mode().IsRegular() {
		file.Close()
		return nil, errors.New("not a regular file")
	}

	// Hint that access will be sequential. This is purely advisory.
	adviseSequential(file)

	// Success.
	return &FileSource{
		file:   file,
		source: stream.SourceFromReader(file),
		size:   metadata.Size(),
		mode:   metadata.Mode().Perm(),
	}, nil
}

// Read implements stream.Source.Read.
func (s *FileSource) Read(buffer []byte) (int, error) {
	return s.source.Read(buffer)
}

// Size returns the size of the file when it was opened.
func (s *FileSource) Size() int64 {
	return s.size
}

// Mode returns the permission bits of the file when it was opened.
func (s *FileSource) Mode() os.FileMode {
	return s.mode
}

// Close implements io.Closer.Close.
func (s *FileSource) Close() error {
	return s.file.Close()
}
