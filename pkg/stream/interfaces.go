// Package stream provides buffered, digesting streams layered over abstract
// byte sources and sinks, along with adapters for composing transports.
package stream

import (
	"io"
)

// Source is an abstract byte source. Read copies up to len(buffer) bytes into
// buffer and returns the number of bytes copied. A return of 0 bytes with a nil
// error signals the end of data, and implementations must continue returning
// 0, nil on subsequent calls. Short reads are permitted at or near the end of
// data. A non-nil error indicates a transport failure.
type Source interface {
	Read(buffer []byte) (int, error)
}

// Sink is an abstract byte sink. Write writes buffer and returns the number of
// bytes written. Buffered writers treat a count other than len(buffer) as a
// failure. Any io.Writer is a Sink.
type Sink interface {
	Write(buffer []byte) (int, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func([]byte) (int, error)

// Read implements Source.Read.
func (f SourceFunc) Read(buffer []byte) (int, error) {
	return f(buffer)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func([]byte) (int, error)

// Write implements Sink.Write.
func (f SinkFunc) Write(buffer []byte) (int, error) {
	return f(buffer)
}

// Flusher represents a stream that performs internal buffering that may need to
// be flushed to ensure transmission.
type Flusher interface {
	// Flush forces transmission of any buffered stream data.
	Flush() error
}

// WriteFlushCloser represents a stream with writing, flushing, and closing
// functionality.
type WriteFlushCloser interface {
	io.Writer
	Flusher
	io.Closer
}

const (
	// maximumConsecutiveEmptyReads is the number of consecutive empty, error-free
	// reads that SourceFromReader will tolerate before failing.
	maximumConsecutiveEmptyReads = 100
)

// readerSource is the Source implementation underlying SourceFromReader.
type readerSource struct {
	// reader is the underlying reader.
	reader io.Reader
	// ended indicates whether or not the reader has returned io.EOF.
	ended bool
	// err is any error deferred from a read that also returned data.
	err error
}

// SourceFromReader adapts an io.Reader to the Source contract. It translates
// io.EOF into the 0, nil end-of-data signal (repeatedly), defers errors that
// accompany data until the following call, and retries empty error-free reads
// a bounded number of times before failing with io.ErrNoProgress.
func SourceFromReader(reader io.Reader) Source {
	return &readerSource{reader: reader}
}

// Read implements Source.Read.
func (s *readerSource) Read(buffer []byte) (int, error) {
	// Handle terminal states.
	if s.ended || len(buffer) == 0 {
		return 0, nil
	} else if s.err != nil {
		return 0, s.err
	}

	// Perform reads until we see data, end of stream, or an error.
	for i := 0; i < maximumConsecutiveEmptyReads; i++ {
		n, err := s.reader.Read(buffer)
		if err == io.EOF {
			s.ended = true
			err = nil
		}
		if n > 0 {
			s.err = err
			return n, nil
		} else if err != nil {
			s.err = err
			return 0, err
		} else if s.ended {
			return 0, nil
		}
	}
	s.err = io.ErrNoProgress
	return 0, s.err
}

// sourceReader is the io.Reader implementation underlying ReaderFromSource.
type sourceReader struct {
	// source is the underlying source.
	source Source
}

// ReaderFromSource adapts a Source to the io.Reader contract, translating the
// 0, nil end-of-data signal into io.EOF.
func ReaderFromSource(source Source) io.Reader {
	return &sourceReader{source}
}

// Read implements io.Reader.Read.
func (r *sourceReader) Read(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}
	n, err := r.source.Read(buffer)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}
