package status

import (
	"io"
	"testing"

	"github.com/pkg/errors"
)

// TestCodeString tests that Code string conversion works as expected.
func TestCodeString(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		code     Code
		expected string
	}{
		{OK, "ok"},
		{CannotRead, "cannot_read"},
		{CannotWrite, "cannot_write"},
		{NotInitialized, "not_initialized"},
		{NotReady, "not_ready"},
		{InvalidParameter, "invalid_parameter"},
		{Unknown, "unknown"},
		{Unknown + 1, "unknown"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if result := testCase.code.String(); result != testCase.expected {
			t.Errorf("code string (%s) does not match expected (%s)", result, testCase.expected)
		}
	}
}

// TestCodeOf tests that codes are extracted from error chains.
func TestCodeOf(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		err      error
		expected Code
	}{
		{nil, OK},
		{io.EOF, Unknown},
		{New(CannotRead, "short read"), CannotRead},
		{Errorf(NotReady, "stream at %d", 5), NotReady},
		{Wrap(io.ErrUnexpectedEOF, CannotWrite, "sink failed"), CannotWrite},
		{errors.Wrap(New(InvalidParameter, "bad"), "outer"), InvalidParameter},
	}

	// Process test cases.
	for i, testCase := range testCases {
		if code := CodeOf(testCase.err); code != testCase.expected {
			t.Errorf("test case %d: code (%s) does not match expected (%s)", i, code, testCase.expected)
		}
	}
}

// TestSentinelMatching tests that sentinel errors match coded errors.
func TestSentinelMatching(t *testing.T) {
	err := errors.Wrap(New(CannotRead, "source exhausted"), "unable to read header")
	if !errors.Is(err, ErrCannotRead) {
		t.Error("wrapped error does not match its code's sentinel")
	}
	if errors.Is(err, ErrCannotWrite) {
		t.Error("wrapped error matches unrelated sentinel")
	}
	if !Is(err, CannotRead) {
		t.Error("Is failed to identify code")
	}
}

// TestWrapRetainsCause tests that Wrap retains the underlying error.
func TestWrapRetainsCause(t *testing.T) {
	if Wrap(nil, CannotRead, "unused") != nil {
		t.Fatal("wrapping nil error returned non-nil error")
	}
	err := Wrap(io.ErrClosedPipe, CannotWrite, "unable to write")
	if errors.Cause(err) != io.ErrClosedPipe {
		t.Error("cause not retained")
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Error("wrapped error not matched through chain")
	}
	if err.Error() != "unable to write: io: read/write on closed pipe" {
		t.Error("unexpected error message:", err.Error())
	}
}
