package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/logging"
	"github.com/streamkit-io/streamkit/pkg/must"
)

const (
	// atomicWriteTemporaryNamePrefix is the file name prefix to use for
	// intermediate temporary files used in atomic writes.
	atomicWriteTemporaryNamePrefix = TemporaryNamePrefix + "atomic-write"
)

// AtomicSink is a stream.Sink that writes a file atomically. Data is written
// to an intermediate temporary file in the target's directory, which is only
// swapped into place by Commit. Closing an uncommitted sink discards the
// temporary file, so a failed stream never leaves a partial target behind.
type AtomicSink struct {
	// path is the target path.
	path string
	// permissions are the permissions to apply to the target.
	permissions os.FileMode
	// temporary is the intermediate temporary file.
	temporary *os.File
	// done indicates whether or not the sink has been committed or discarded.
	done bool
	// logger is the logger for cleanup failures.
	logger *logging.Logger
}

// CreateAtomicSink creates a new atomic sink targeting path.
func CreateAtomicSink(path string, permissions os.FileMode, logger *logging.Logger) (*AtomicSink, error) {
	// Create a temporary file. The os package already uses secure permissions
	// for creating temporary files, so we don't need to change them.
	temporary, err := os.CreateTemp(filepath.Dir(path), atomicWriteTemporaryNamePrefix)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create temporary file")
	}

	// Success.
	return &AtomicSink{
		path:        path,
		permissions: permissions,
		temporary:   temporary,
		logger:      logger,
	}, nil
}

// Write implements stream.Sink.Write.
func (s *AtomicSink) Write(buffer []byte) (int, error) {
	if s.done {
		return 0, errors.New("sink already closed")
	}
	return s.temporary.Write(buffer)
}

// Commit syncs and closes the temporary file and renames it to the target
// path. On failure the temporary file is removed.
func (s *AtomicSink) Commit() error {
	// Ensure that the sink is still open.
	if s.done {
		return errors.New("sink already closed")
	}
	s.done = true

	// Flush data to disk.
	if err := s.temporary.Sync(); err != nil {
		must.Close(s.temporary, s.logger)
		must.OSRemove(s.temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to sync temporary file")
	}

	// Close out the file.
	if err := s.temporary.Close(); err != nil {
		must.OSRemove(s.temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to close temporary file")
	}

	// Set the file's permissions.
	if err := os.Chmod(s.temporary.Name(), s.permissions); err != nil {
		must.OSRemove(s.temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to change file permissions")
	}

	// Rename the file.
	if err := os.Rename(s.temporary.Name(), s.path); err != nil {
		must.OSRemove(s.temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to rename file")
	}

	// Success.
	return nil
}

// Close implements io.Closer.Close. If the sink hasn't been committed, the
// temporary file is discarded. Closing a committed sink is a no-op.
func (s *AtomicSink) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	must.Close(s.temporary, s.logger)
	if err := os.Remove(s.temporary.Name()); err != nil {
		return errors.Wrap(err, "unable to remove temporary file")
	}
	return nil
}
