package main

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/compression"
	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/filesystem"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/must"
	"github.com/streamkit-io/streamkit/pkg/socket"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

// pump moves data from reader to writer until reader's stream ends, using
// chunks of at most chunkSize bytes.
func pump[D digest.Value](reader *stream.Reader[D], writer *stream.Writer[D], chunkSize int) error {
	chunk := make([]byte, chunkSize)
	for {
		n, err := reader.Read(chunk)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := writer.WriteBytes(chunk[:n]); err != nil {
			return err
		}
	}
}

// pumpN moves exactly count bytes from reader to writer, using chunks of at
// most chunkSize bytes. It fails if reader's stream ends early.
func pumpN[D digest.Value](reader *stream.Reader[D], writer *stream.Writer[D], count uint64, chunkSize int) error {
	chunk := make([]byte, chunkSize)
	for count > 0 {
		size := chunkSize
		if uint64(size) > count {
			size = int(count)
		}
		if err := reader.ReadBytes(chunk[:size]); err != nil {
			return err
		} else if err := writer.WriteBytes(chunk[:size]); err != nil {
			return err
		}
		count -= uint64(size)
	}
	return nil
}

// digestStream computes the digest of all data in source, returning the digest
// and the number of bytes digested.
func digestStream[D digest.Value](source stream.Source, algorithm hashing.Algorithm, bufferSize int) (D, uint64, error) {
	var zero D

	// Create the hasher.
	hasher, err := hashing.New[D](algorithm)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create hasher")
	}

	// Create the reader.
	reader, err := stream.NewReader(source, hasher, bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create reader")
	}

	// Drain the stream.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return zero, 0, errors.Wrap(err, "unable to read stream")
	}

	// Extract the digest.
	result, err := reader.Digest()
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to compute digest")
	}

	// Success.
	return result, reader.Position(), nil
}

// copyStream copies all data from source to sink. The source is decompressed
// using inputCompression and the sink is compressed according to options.
// Digests are computed over the uncompressed data on both sides and the copy
// fails if they differ. The sink is left uncommitted.
func copyStream[D digest.Value](
	ctx context.Context,
	source stream.Source,
	sink stream.Sink,
	inputCompression compression.Algorithm,
	options transferOptions,
) (D, uint64, error) {
	var zero D

	// Set up the input side.
	source = stream.NewPreemptableSource(source, ctx.Done(), preemptionCheckInterval)
	decompressor, err := compression.NewDecompressingSource(source, inputCompression)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create decompressor")
	}
	defer must.Close(decompressor, logger)
	readHasher, err := hashing.New[D](options.hashing)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create hasher")
	}
	reader, err := stream.NewReader(decompressor, readHasher, options.bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create reader")
	}

	// Set up the output side.
	compressor, err := compression.NewCompressingSink(sink, options.compression)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create compressor")
	}
	writeHasher, err := hashing.New[D](options.hashing)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create hasher")
	}
	writer, err := stream.NewWriter(compressor, writeHasher, options.bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create writer")
	}

	// Perform the copy.
	if err := pump(reader, writer, options.bufferSize); err != nil {
		return zero, 0, errors.Wrap(err, "unable to copy data")
	} else if err := writer.End(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to end output stream")
	} else if err := compressor.Close(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to finalize compression")
	}
	logger.Debugf("Copied %d bytes (%d bytes buffered at end)", writer.Position(), reader.Buffered())

	// Verify digests.
	readDigest, err := reader.Digest()
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to compute input digest")
	}
	writeDigest, err := writer.CheckedDigest()
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to compute output digest")
	}
	if readDigest != writeDigest {
		return zero, 0, errors.Errorf("digest mismatch: %s != %s", digest.Hex(readDigest), digest.Hex(writeDigest))
	}

	// Success.
	return writeDigest, writer.Position(), nil
}

// The send and receive commands use a simple framed protocol over a single
// connection. The sender transmits (through the configured compression) an
// 8-byte little-endian content length, the content, and the digest of the
// content. The receiver verifies the digest, commits the content, and replies
// with the raw bytes of the digest that it computed. Both sides must agree on
// the hashing and compression algorithms.

// sendStream sends the contents of file over connection and waits for the
// receiver's acknowledgement.
func sendStream[D digest.Value](
	ctx context.Context,
	connection *socket.Connection,
	file *filesystem.FileSource,
	options transferOptions,
	auditor stream.Auditor,
) (D, uint64, error) {
	var zero D

	// Set up the outbound stream. The content digest is computed on the input
	// side, so the outbound writer doesn't hash.
	compressor, err := compression.NewCompressingSink(stream.NewAuditSink(connection, auditor), options.compression)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create compressor")
	}
	writer, err := stream.NewWriter[D](stream.NewFlushSink(compressor), nil, options.bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create writer")
	}

	// Set up the input stream.
	hasher, err := hashing.New[D](options.hashing)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create hasher")
	}
	source := stream.NewPreemptableSource(file, ctx.Done(), preemptionCheckInterval)
	reader, err := stream.NewReader(source, hasher, options.bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create reader")
	}

	// Transmit the header and content.
	size := uint64(file.Size())
	if err := stream.WriteValue(writer, size); err != nil {
		return zero, 0, errors.Wrap(err, "unable to transmit header")
	} else if err := pump(reader, writer, options.bufferSize); err != nil {
		return zero, 0, errors.Wrap(err, "unable to transmit content")
	} else if reader.Position() != size {
		return zero, 0, errors.Errorf("file size changed during transmission: %d != %d", reader.Position(), size)
	}

	// Transmit the trailer and terminate the outbound stream.
	result, err := reader.Digest()
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to compute digest")
	} else if err := writer.WriteBytes(digest.Bytes(result)); err != nil {
		return zero, 0, errors.Wrap(err, "unable to transmit trailer")
	} else if err := writer.End(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to end stream")
	} else if err := compressor.Close(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to finalize compression")
	} else if err := connection.CloseWrite(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to close outbound stream")
	}

	// Wait for the acknowledgement.
	acknowledgement, err := stream.NewReader[D](connection, nil, digest.Size[D]())
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to receive acknowledgement")
	}
	remoteDigestBytes := make([]byte, digest.Size[D]())
	if err := acknowledgement.ReadBytes(remoteDigestBytes); err != nil {
		return zero, 0, errors.Wrap(err, "unable to receive acknowledgement")
	}
	remoteDigest, err := digest.FromBytes[D](remoteDigestBytes)
	if err != nil {
		return zero, 0, errors.Wrap(err, "invalid acknowledgement")
	} else if remoteDigest != result {
		return zero, 0, errors.Errorf("receiver digest mismatch: %s != %s", digest.Hex(remoteDigest), digest.Hex(result))
	}

	// Success.
	return result, size, nil
}

// receiveStream receives content from connection into sink, verifies it, and
// acknowledges it. The sink is left uncommitted, but the content has been
// fully verified if receiveStream succeeds.
func receiveStream[D digest.Value](
	ctx context.Context,
	connection *socket.Connection,
	sink stream.Sink,
	options transferOptions,
	auditor stream.Auditor,
) (D, uint64, error) {
	var zero D

	// Set up the inbound stream. The content digest is computed on the output
	// side, so the inbound reader doesn't hash.
	source := stream.NewAuditSource(
		stream.NewPreemptableSource(connection, ctx.Done(), preemptionCheckInterval),
		auditor,
	)
	decompressor, err := compression.NewDecompressingSource(source, options.compression)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create decompressor")
	}
	defer must.Close(decompressor, logger)
	reader, err := stream.NewReader[D](decompressor, nil, options.bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create reader")
	}

	// Receive the header.
	size, err := stream.ReadValue[uint64](reader)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to receive header")
	} else if reader.Position() != 8 {
		return zero, 0, errors.New("stream ended before header")
	}

	// Set up the output stream.
	hasher, err := hashing.New[D](options.hashing)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create hasher")
	}
	writer, err := stream.NewWriter(sink, hasher, options.bufferSize)
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to create writer")
	}

	// Receive the content.
	if err := pumpN(reader, writer, size, options.bufferSize); err != nil {
		return zero, 0, errors.Wrap(err, "unable to receive content")
	} else if err := writer.End(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to end output stream")
	}

	// Receive and verify the trailer.
	expectedBytes := make([]byte, digest.Size[D]())
	if err := reader.ReadBytes(expectedBytes); err != nil {
		return zero, 0, errors.Wrap(err, "unable to receive trailer")
	} else if !reader.Ended() {
		return zero, 0, errors.New("unexpected data after trailer")
	}
	expected, err := digest.FromBytes[D](expectedBytes)
	if err != nil {
		return zero, 0, errors.Wrap(err, "invalid trailer")
	}
	result, err := writer.CheckedDigest()
	if err != nil {
		return zero, 0, errors.Wrap(err, "unable to compute digest")
	} else if result != expected {
		return zero, 0, errors.Errorf("digest mismatch: %s != %s", digest.Hex(result), digest.Hex(expected))
	}

	// Acknowledge receipt.
	if _, err := connection.Write(digest.Bytes(result)); err != nil {
		return zero, 0, errors.Wrap(err, "unable to transmit acknowledgement")
	} else if err := connection.CloseWrite(); err != nil {
		return zero, 0, errors.Wrap(err, "unable to close outbound stream")
	}

	// Success.
	return result, size, nil
}
