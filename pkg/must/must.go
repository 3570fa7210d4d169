// Package must provides best-effort helpers for operations whose failures
// can't be propagated, such as deferred cleanup. Failures are logged as
// warnings and otherwise ignored.
package must

import (
	"io"
	"os"

	"github.com/streamkit-io/streamkit/pkg/logging"
)

// Close closes c, logging any failure. For buffered writers this is the
// implicit completion path: the stream is ended (flushing buffered data and
// finalizing its digest) and a failure to do so is logged rather than
// returned.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

// End ends e, logging any failure.
func End(e interface{ End() error }, logger *logging.Logger) {
	if err := e.End(); err != nil {
		logger.Warnf("Unable to end stream: %s", err.Error())
	}
}

// OSRemove removes the named file, logging any failure.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

// Succeed logs err if it's non-nil.
func Succeed(err error, task string, logger *logging.Logger) {
	if err != nil {
		logger.Warnf("Unable to succeed at %s; %s", task, err.Error())
	}
}
