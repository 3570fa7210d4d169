// Package compression provides compressing sinks and decompressing sources.
package compression

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/bimap"
	"github.com/streamkit-io/streamkit/pkg/status"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

const (
	// defaultDeflateLevel is the compression level to use for deflate
	// compressors.
	defaultDeflateLevel = 6
)

// Algorithm identifies a compression algorithm.
type Algorithm uint8

const (
	// AlgorithmDefault is the unset algorithm value. It resolves to
	// AlgorithmNone when used as a configuration value.
	AlgorithmDefault Algorithm = iota
	// AlgorithmNone performs no compression.
	AlgorithmNone
	// AlgorithmDeflate is DEFLATE compression.
	AlgorithmDeflate
	// AlgorithmZstandard is Zstandard compression.
	AlgorithmZstandard
)

// algorithmNames maps algorithms to their textual specifications.
var algorithmNames = bimap.New[Algorithm, string]().
	MustInsert(AlgorithmNone, "none").
	MustInsert(AlgorithmDeflate, "deflate").
	MustInsert(AlgorithmZstandard, "zstd")

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
	text := string(textBytes)
	algorithm, ok := algorithmNames.ByValue(text)
	if !ok {
		return status.Errorf(status.InvalidParameter, "unknown compression algorithm specification: %s", text)
	}
	*a = algorithm
	return nil
}

// Supported indicates whether or not a particular compression algorithm is a
// valid, non-default value.
func (a Algorithm) Supported() bool {
	_, ok := algorithmNames.ByKey(a)
	return ok
}

// Description returns a human-readable description of a compression
// algorithm.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmDefault:
		return "Default"
	case AlgorithmNone:
		return "None"
	case AlgorithmDeflate:
		return "DEFLATE"
	case AlgorithmZstandard:
		return "Zstandard"
	default:
		return "Unknown"
	}
}

// passthroughSink adapts an uncompressed sink to stream.WriteFlushCloser.
type passthroughSink struct {
	stream.Sink
}

// Flush implements stream.Flusher.Flush.
func (passthroughSink) Flush() error {
	return nil
}

// Close implements io.Closer.Close.
func (passthroughSink) Close() error {
	return nil
}

// NewCompressingSink wraps sink in a compressor. Flush forces all data written
// so far through to sink in decodable form, and Close terminates the compressed
// stream. Neither closes sink itself.
func NewCompressingSink(sink stream.Sink, algorithm Algorithm) (stream.WriteFlushCloser, error) {
	switch algorithm {
	case AlgorithmNone:
		return passthroughSink{sink}, nil
	case AlgorithmDeflate:
		compressor, err := flate.NewWriter(sink, defaultDeflateLevel)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create deflate compressor")
		}
		return compressor, nil
	case AlgorithmZstandard:
		compressor, err := zstd.NewWriter(sink, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(err, "unable to create zstandard compressor")
		}
		return compressor, nil
	default:
		return nil, status.Errorf(status.InvalidParameter, "unsupported compression algorithm: %s", algorithm)
	}
}

// DecompressingSource is a stream.Source that decompresses data from an
// underlying source. It must be closed to release decompressor resources.
type DecompressingSource struct {
	// decompressor is the underlying decompressor.
	decompressor io.ReadCloser
	// source adapts the decompressor to the stream.Source contract.
	source stream.Source
}

// NewDecompressingSource wraps source in a decompressor.
func NewDecompressingSource(source stream.Source, algorithm Algorithm) (*DecompressingSource, error) {
	// Create the decompressor.
	var decompressor io.ReadCloser
	reader := stream.ReaderFromSource(source)
	switch algorithm {
	case AlgorithmNone:
		decompressor = io.NopCloser(reader)
	case AlgorithmDeflate:
		decompressor = flate.NewReader(reader)
	case AlgorithmZstandard:
		d, err := zstd.NewReader(reader, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(err, "unable to create zstandard decompressor")
		}
		decompressor = d.IOReadCloser()
	default:
		return nil, status.Errorf(status.InvalidParameter, "unsupported compression algorithm: %s", algorithm)
	}

	// Success.
	return &DecompressingSource{
		decompressor: decompressor,
		source:       stream.SourceFromReader(decompressor),
	}, nil
}

// Read implements stream.Source.Read.
func (s *DecompressingSource) Read(buffer []byte) (int, error) {
	return s.source.Read(buffer)
}

// Close implements io.Closer.Close.
func (s *DecompressingSource) Close() error {
	return s.decompressor.Close()
}
