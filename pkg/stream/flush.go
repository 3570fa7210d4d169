package stream

import (
	"io"

	"github.com/pkg/errors"
)

// WriteFlusher represents a stream with writing and flushing functionality.
type WriteFlusher interface {
	io.Writer
	Flusher
}

// flushSink is the Sink implementation underlying NewFlushSink.
type flushSink struct {
	// writer is the underlying writer.
	writer WriteFlusher
}

// NewFlushSink creates a sink that flushes writer after every write. It's
// intended for layering internally buffered encoders (such as compressors)
// beneath a Writer, so that each buffer flush is transmitted immediately.
func NewFlushSink(writer WriteFlusher) Sink {
	return &flushSink{writer}
}

// Write implements Sink.Write.
func (s *flushSink) Write(buffer []byte) (int, error) {
	count, err := s.writer.Write(buffer)
	if err != nil {
		return count, err
	} else if err = s.writer.Flush(); err != nil {
		return 0, errors.Wrap(err, "unable to flush")
	}
	return count, nil
}
