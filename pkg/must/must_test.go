package must

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/streamkit-io/streamkit/pkg/logging"
)

// failingCloser is an io.Closer that always fails.
type failingCloser struct{}

// Close implements io.Closer.Close.
func (failingCloser) Close() error {
	return errors.New("sink unavailable")
}

// TestCloseLogsFailure tests that Close logs failures instead of returning
// them.
func TestCloseLogsFailure(t *testing.T) {
	color.NoColor = true
	output := &bytes.Buffer{}
	Close(failingCloser{}, logging.NewLogger(logging.LevelWarn, output))
	if !strings.Contains(output.String(), "Unable to close: sink unavailable") {
		t.Error("failure not logged:", output.String())
	}
}

// TestSucceedSilentOnSuccess tests that Succeed doesn't log nil errors.
func TestSucceedSilentOnSuccess(t *testing.T) {
	output := &bytes.Buffer{}
	Succeed(nil, "nothing", logging.NewLogger(logging.LevelTrace, output))
	if output.Len() != 0 {
		t.Error("successful task logged:", output.String())
	}
}
