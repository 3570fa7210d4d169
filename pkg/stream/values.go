package stream

import (
	"bytes"
	"encoding/binary"

	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/status"
)

// Fixed-size values are transferred using their raw little-endian layout as
// produced by encoding/binary. Padding-free struct types, fixed-size arrays,
// and fixed-size numeric types are supported.

// valueSize returns the encoded size of T, or an error if T doesn't have a
// fixed, non-zero size. Slice types report a zero size and are rejected here.
func valueSize[T any]() (int, error) {
	var value T
	size := binary.Size(value)
	if size < 1 {
		return 0, status.Errorf(status.InvalidParameter, "type %T does not have a fixed size", value)
	}
	return size, nil
}

// decodeValue decodes a value of type T from data.
func decodeValue[T any](data []byte) (T, error) {
	var value T
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &value); err != nil {
		return value, status.Wrap(err, status.InvalidParameter, "unable to decode value")
	}
	return value, nil
}

// Peek returns the next value of type T in the stream without consuming it.
// If fewer bytes than the size of T remain in the stream, Peek returns the zero
// value of T and a nil error; peeking past the end of the stream is not a
// failure. If the size of T exceeds the buffer capacity, the buffer is grown to
// hold it. Source failures are returned.
func Peek[T any, D digest.Value](r *Reader[D]) (T, error) {
	var zero T

	// Determine the value size.
	size, err := valueSize[T]()
	if err != nil {
		return zero, err
	}

	// Ensure that the value is buffered.
	if available, err := r.ensure(size); err != nil {
		return zero, err
	} else if !available {
		return zero, nil
	}

	// Decode the value.
	return decodeValue[T](r.buffer[r.cursor : r.cursor+size])
}

// ReadValue reads the next value of type T from the stream.
//
// ReadValue is intended for optional trailing values: if fewer bytes than the
// size of T remain in the stream, it returns the zero value of T and a nil
// error without consuming anything, regardless of the buffer capacity (which is
// grown to hold T if necessary). This is deliberately different from
// ReadBytes, which fails with status.CannotRead when the stream ends early.
// Callers that require a value must check Ended (or use ReadBytes) to tell a
// genuine zero from an absent value. Source failures are returned.
func ReadValue[T any, D digest.Value](r *Reader[D]) (T, error) {
	var zero T

	// Determine the value size.
	size, err := valueSize[T]()
	if err != nil {
		return zero, err
	}

	// Ensure that the value is buffered.
	if available, err := r.ensure(size); err != nil {
		return zero, err
	} else if !available {
		return zero, nil
	}

	// Decode the value and consume its bytes.
	value, err := decodeValue[T](r.buffer[r.cursor : r.cursor+size])
	if err != nil {
		return zero, err
	}
	r.cursor += size
	r.position += uint64(size)
	r.settle()
	return value, nil
}

// WriteValue writes values of type T to the stream using their raw layout.
// As with any raw layout, the caller is responsible for ensuring that T carries
// no meaningful padding.
func WriteValue[T any, D digest.Value](w *Writer[D], values ...T) error {
	// Validate the value type.
	size, err := valueSize[T]()
	if err != nil {
		return err
	}

	// Encode the values.
	encoded := bytes.NewBuffer(make([]byte, 0, size*len(values)))
	if err := binary.Write(encoded, binary.LittleEndian, values); err != nil {
		return status.Wrap(err, status.InvalidParameter, "unable to encode values")
	}

	// Write the encoded values.
	return w.WriteBytes(encoded.Bytes())
}
