package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

// TestSourceFromReaderEOF tests that io.EOF is translated into repeated end of
// data signals.
func TestSourceFromReaderEOF(t *testing.T) {
	source := SourceFromReader(iotest.DataErrReader(bytes.NewReader([]byte("data"))))
	buffer := make([]byte, 16)
	if n, err := source.Read(buffer); err != nil || n != 4 {
		t.Fatal("unexpected first read result:", n, err)
	}
	for i := 0; i < 3; i++ {
		if n, err := source.Read(buffer); err != nil || n != 0 {
			t.Fatal("unexpected end of data result:", n, err)
		}
	}
}

// TestSourceFromReaderDeferredError tests that errors accompanying data are
// reported by the following read.
func TestSourceFromReaderDeferredError(t *testing.T) {
	failure := errors.New("disk failure")
	var calls int
	reader := readerFunc(func(buffer []byte) (int, error) {
		calls++
		return copy(buffer, "ab"), failure
	})
	source := SourceFromReader(reader)
	buffer := make([]byte, 16)
	if n, err := source.Read(buffer); err != nil || n != 2 {
		t.Fatal("unexpected first read result:", n, err)
	}
	if _, err := source.Read(buffer); err != failure {
		t.Fatal("deferred error not reported:", err)
	}
	if calls != 1 {
		t.Error("reader invoked after failure")
	}
}

// TestSourceFromReaderNoProgress tests that endlessly empty readers fail.
func TestSourceFromReaderNoProgress(t *testing.T) {
	source := SourceFromReader(readerFunc(func(_ []byte) (int, error) {
		return 0, nil
	}))
	if _, err := source.Read(make([]byte, 4)); err != io.ErrNoProgress {
		t.Error("unexpected error for empty reader:", err)
	}
}

// TestReaderOverIOReader tests a buffered reader layered over an adapted
// io.Reader that performs single byte reads.
func TestReaderOverIOReader(t *testing.T) {
	data := testData(300)
	source := SourceFromReader(iotest.OneByteReader(bytes.NewReader(data)))
	reader, err := NewReader(source, newSHA256(t), 64)
	if err != nil {
		t.Fatal("unable to create reader:", err)
	}
	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatal("unable to read stream:", err)
	} else if !bytes.Equal(result, data) {
		t.Error("stream data mismatch")
	}
}

// readerFunc adapts a function to io.Reader.
type readerFunc func([]byte) (int, error)

// Read implements io.Reader.Read.
func (f readerFunc) Read(buffer []byte) (int, error) {
	return f(buffer)
}

// TestReaderFromSource tests that the end-of-data signal is translated into
// io.EOF and that iotest's reader checks pass.
func TestReaderFromSource(t *testing.T) {
	data := testData(1000)
	reader := ReaderFromSource(SourceFromReader(bytes.NewReader(data)))
	if err := iotest.TestReader(reader, data); err != nil {
		t.Error("reader test failed:", err)
	}
}
