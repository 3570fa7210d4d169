package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/streamkit-io/streamkit/cmd"
	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/filesystem"
	"github.com/streamkit-io/streamkit/pkg/must"
	"github.com/streamkit-io/streamkit/pkg/socket"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

// receiveFile receives content from connection into sink and formats the
// resulting digest.
func receiveFile[D digest.Value](
	ctx context.Context,
	connection *socket.Connection,
	sink stream.Sink,
	options transferOptions,
	auditor stream.Auditor,
) (string, uint64, error) {
	result, size, err := receiveStream[D](ctx, connection, sink, options, auditor)
	if err != nil {
		return "", 0, err
	}
	return digest.Hex(result), size, nil
}

// dispatchReceive invokes receiveFile with the digest type of the configured
// hashing algorithm.
func dispatchReceive(
	ctx context.Context,
	connection *socket.Connection,
	sink stream.Sink,
	options transferOptions,
	auditor stream.Auditor,
) (string, uint64, error) {
	switch options.hashing.Size() {
	case 8:
		return receiveFile[digest.Digest64](ctx, connection, sink, options, auditor)
	case 16:
		return receiveFile[digest.Digest128](ctx, connection, sink, options, auditor)
	case 32:
		return receiveFile[digest.Digest256](ctx, connection, sink, options, auditor)
	case 64:
		return receiveFile[digest.Digest512](ctx, connection, sink, options, auditor)
	default:
		return "", 0, errors.Errorf("unsupported hashing algorithm: %s", options.hashing)
	}
}

// receiveMain is the entry point for the receive command.
func receiveMain(_ *cobra.Command, arguments []string) error {
	// Resolve options.
	options, err := receiveConfiguration.resolve(settings)
	if err != nil {
		return err
	}

	// Set up cancellation on termination signals.
	ctx, stop := cmd.TerminationContext()
	defer stop()

	// Listen and accept a single connection.
	listener, err := socket.Listen("tcp", arguments[0])
	if err != nil {
		return errors.Wrap(err, "unable to listen")
	}
	logger.Infof("Listening on %s", listener.Addr())
	connection, err := socket.Accept(ctx, listener, options.timeout)
	if err != nil {
		must.Close(listener, logger)
		return errors.Wrap(err, "unable to accept sender")
	}
	defer must.Close(stream.NewMultiCloser(connection, listener), logger)
	logger.Infof("Accepted connection from %s", connection.RemoteAddress())

	// Create the destination. If the transfer doesn't commit, closure discards
	// it.
	destination, err := filesystem.CreateAtomicSink(arguments[1], 0644, logger)
	if err != nil {
		return errors.Wrap(err, "unable to create destination")
	}
	defer must.Close(destination, logger)

	// Receive the file with progress reporting.
	progress := newProgressReporter("Received", cmd.IsTerminal(os.Stdout))
	result, size, err := dispatchReceive(ctx, connection, destination, options, progress.auditor())
	progress.finish()
	if err != nil {
		return err
	}

	// Commit the destination.
	if err := destination.Commit(); err != nil {
		return errors.Wrap(err, "unable to commit destination")
	}

	// Print the result.
	fmt.Printf("%s  %s (%d bytes)\n", result, arguments[1], size)

	// Success.
	return nil
}

// receiveCommand is the receive command.
var receiveCommand = &cobra.Command{
	Use:          "receive <listen-address> <path>",
	Short:        "Receive a file from a sender",
	Args:         cobra.ExactArgs(2),
	Run:          cmd.Mainify(receiveMain),
	SilenceUsage: true,
}

// receiveConfiguration stores configuration for the receive command.
var receiveConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// transferFlags are the hashing, buffering, and compression flags.
	transferFlags
}

func init() {
	// Grab a handle for the command line flags.
	flags := receiveCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&receiveConfiguration.help, "help", "h", false, "Show help information")

	// Wire up receive flags.
	receiveConfiguration.register(flags, true)
}
