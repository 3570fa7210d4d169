package stream

import (
	"testing"

	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// testRecord is a padding-free fixed-size record for value tests.
type testRecord struct {
	Identifier uint32
	Flags      uint16
	Kind       uint16
	Offset     int64
}

// TestValueRoundTrip tests writing and reading fixed-size values.
func TestValueRoundTrip(t *testing.T) {
	// Write values.
	sink := &recordingSink{}
	writer, err := NewWriter[digest.Digest256](sink, nil, 7)
	if err != nil {
		t.Fatal("unable to create writer:", err)
	}
	records := []testRecord{{1, 2, 3, -4}, {5, 6, 7, 1 << 40}}
	if err := WriteValue(writer, records...); err != nil {
		t.Fatal("unable to write records:", err)
	}
	if err := WriteValue(writer, uint32(0xdeadbeef)); err != nil {
		t.Fatal("unable to write trailer:", err)
	}
	if err := writer.End(); err != nil {
		t.Fatal("unable to end stream:", err)
	}
	if writer.Position() != 2*16+4 {
		t.Fatal("unexpected position:", writer.Position())
	}

	// Read them back.
	reader, err := NewReader[digest.Digest256](&chunkedSource{data: sink.data}, nil, 20)
	if err != nil {
		t.Fatal("unable to create reader:", err)
	}
	for i, expected := range records {
		if peeked, err := Peek[testRecord](reader); err != nil {
			t.Fatal("unable to peek record:", err)
		} else if peeked != expected {
			t.Errorf("peeked record %d mismatch", i)
		}
		if record, err := ReadValue[testRecord](reader); err != nil {
			t.Fatal("unable to read record:", err)
		} else if record != expected {
			t.Errorf("record %d mismatch", i)
		}
	}
	if trailer, err := ReadValue[uint32](reader); err != nil {
		t.Fatal("unable to read trailer:", err)
	} else if trailer != 0xdeadbeef {
		t.Errorf("trailer mismatch: %x", trailer)
	}
	if !reader.Ended() {
		t.Error("reader not ended after final value")
	}
}

// TestReadValueAtEnd tests that reading an absent trailing value returns the
// zero value without failing or consuming data.
func TestReadValueAtEnd(t *testing.T) {
	reader, err := NewReader[digest.Digest256](&chunkedSource{data: []byte{1, 2}}, nil, 16)
	if err != nil {
		t.Fatal("unable to create reader:", err)
	}
	if value, err := ReadValue[uint32](reader); err != nil {
		t.Fatal("short read value failed:", err)
	} else if value != 0 {
		t.Error("short read value returned non-zero value")
	}
	if reader.Position() != 0 {
		t.Error("short read value consumed data")
	}
	if value, err := ReadValue[uint16](reader); err != nil {
		t.Fatal("unable to read value:", err)
	} else if value != 0x0201 {
		t.Errorf("unexpected value: %x", value)
	}
	if value, err := ReadValue[uint8](reader); err != nil || value != 0 {
		t.Error("read value at end of stream did not return zero value:", value, err)
	}
}

// TestReadValueLargerThanBuffer tests values that exceed the buffer capacity.
func TestReadValueLargerThanBuffer(t *testing.T) {
	data := testData(64)
	reader, err := NewReader[digest.Digest256](&chunkedSource{data: data}, nil, 4)
	if err != nil {
		t.Fatal("unable to create reader:", err)
	}
	if peeked, err := Peek[[32]byte](reader); err != nil {
		t.Fatal("unable to peek:", err)
	} else if string(peeked[:]) != string(data[:32]) {
		t.Error("oversized peek value mismatch")
	}
	if reader.Position() != 0 {
		t.Error("peek advanced position:", reader.Position())
	}
	value, err := ReadValue[[32]byte](reader)
	if err != nil {
		t.Fatal("unable to read value:", err)
	} else if string(value[:]) != string(data[:32]) {
		t.Error("value mismatch")
	}
	if reader.Position() != 32 {
		t.Error("unexpected position:", reader.Position())
	}
	remaining := make([]byte, 32)
	if err := reader.ReadBytes(remaining); err != nil {
		t.Fatal("unable to read remaining data:", err)
	} else if string(remaining) != string(data[32:]) {
		t.Error("remaining data mismatch")
	}
	if !reader.Ended() {
		t.Error("reader not ended after consuming all data")
	}
}

// TestValueCapacityIndependence tests that value reads behave identically
// whether the value size is below, equal to, or above the buffer capacity.
func TestValueCapacityIndependence(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 4, 5, 8, 16} {
		// Peek a value that's fully present.
		reader, err := NewReader[digest.Digest256](&chunkedSource{data: []byte{1, 2, 3, 4, 5, 6, 7, 8}}, nil, capacity)
		if err != nil {
			t.Fatalf("capacity %d: unable to create reader: %v", capacity, err)
		}
		if value, err := Peek[uint64](reader); err != nil {
			t.Fatalf("capacity %d: unable to peek: %v", capacity, err)
		} else if value != 0x0807060504030201 {
			t.Errorf("capacity %d: unexpected peeked value: %x", capacity, value)
		}
		if value, err := ReadValue[uint64](reader); err != nil {
			t.Fatalf("capacity %d: unable to read value: %v", capacity, err)
		} else if value != 0x0807060504030201 {
			t.Errorf("capacity %d: unexpected value: %x", capacity, value)
		}
		if reader.Position() != 8 || !reader.Ended() {
			t.Errorf("capacity %d: unexpected final state", capacity)
		}

		// Read a value from a stream that's too short to hold it.
		reader, err = NewReader[digest.Digest256](&chunkedSource{data: []byte{9, 9}}, nil, capacity)
		if err != nil {
			t.Fatalf("capacity %d: unable to create reader: %v", capacity, err)
		}
		if value, err := Peek[uint32](reader); err != nil || value != 0 {
			t.Errorf("capacity %d: short peek returned %x, %v", capacity, value, err)
		}
		if value, err := ReadValue[uint32](reader); err != nil || value != 0 {
			t.Errorf("capacity %d: short read value returned %x, %v", capacity, value, err)
		}
		if reader.Position() != 0 {
			t.Errorf("capacity %d: short read value consumed data", capacity)
		}
		remaining := make([]byte, 2)
		if err := reader.ReadBytes(remaining); err != nil {
			t.Errorf("capacity %d: unable to read remaining data: %v", capacity, err)
		} else if remaining[0] != 9 || remaining[1] != 9 {
			t.Errorf("capacity %d: remaining data mismatch", capacity)
		}
		if reader.Position() != 2 || !reader.Ended() {
			t.Errorf("capacity %d: unexpected final state", capacity)
		}
	}
}

// TestValueVariableSize tests that variable-size types are rejected.
func TestValueVariableSize(t *testing.T) {
	reader, err := NewReader[digest.Digest256](&chunkedSource{data: []byte("abc")}, nil, 16)
	if err != nil {
		t.Fatal("unable to create reader:", err)
	}
	if _, err := ReadValue[string](reader); !status.Is(err, status.InvalidParameter) {
		t.Error("variable-size type not rejected:", err)
	}
	writer, err := NewWriter[digest.Digest256](&recordingSink{}, nil, 16)
	if err != nil {
		t.Fatal("unable to create writer:", err)
	}
	if err := WriteValue(writer, "text"); !status.Is(err, status.InvalidParameter) {
		t.Error("variable-size type not rejected:", err)
	}
}
