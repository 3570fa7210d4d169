package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// TerminationSignals are those signals which streamkit considers to be
// requesting termination.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// TerminationContext returns a context that is cancelled when a termination
// signal is received. The returned stop function should be invoked to release
// signal handling resources.
func TerminationContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), TerminationSignals...)
}
