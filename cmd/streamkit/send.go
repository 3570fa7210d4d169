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

// sendFile sends file over connection and formats the resulting digest.
func sendFile[D digest.Value](
	ctx context.Context,
	connection *socket.Connection,
	file *filesystem.FileSource,
	options transferOptions,
	auditor stream.Auditor,
) (string, uint64, error) {
	result, size, err := sendStream[D](ctx, connection, file, options, auditor)
	if err != nil {
		return "", 0, err
	}
	return digest.Hex(result), size, nil
}

// dispatchSend invokes sendFile with the digest type of the configured hashing
// algorithm.
func dispatchSend(
	ctx context.Context,
	connection *socket.Connection,
	file *filesystem.FileSource,
	options transferOptions,
	auditor stream.Auditor,
) (string, uint64, error) {
	switch options.hashing.Size() {
	case 8:
		return sendFile[digest.Digest64](ctx, connection, file, options, auditor)
	case 16:
		return sendFile[digest.Digest128](ctx, connection, file, options, auditor)
	case 32:
		return sendFile[digest.Digest256](ctx, connection, file, options, auditor)
	case 64:
		return sendFile[digest.Digest512](ctx, connection, file, options, auditor)
	default:
		return "", 0, errors.Errorf("unsupported hashing algorithm: %s", options.hashing)
	}
}

// sendMain is the entry point for the send command.
func sendMain(_ *cobra.Command, arguments []string) error {
	// Resolve options.
	options, err := sendConfiguration.resolve(settings)
	if err != nil {
		return err
	}

	// Set up cancellation on termination signals.
	ctx, stop := cmd.TerminationContext()
	defer stop()

	// Open the file.
	file, err := filesystem.OpenSource(arguments[1])
	if err != nil {
		return errors.Wrap(err, "unable to open file")
	}
	defer must.Close(file, logger)

	// Connect to the receiver.
	dialContext, cancel := context.WithTimeout(ctx, socket.RecommendedDialTimeout)
	defer cancel()
	connection, err := socket.Dial(dialContext, "tcp", arguments[0], options.timeout)
	if err != nil {
		return errors.Wrap(err, "unable to connect to receiver")
	}
	defer must.Close(connection, logger)
	logger.Infof("Connected to %s", connection.RemoteAddress())

	// Send the file with progress reporting.
	progress := newProgressReporter("Sent", cmd.IsTerminal(os.Stdout))
	result, size, err := dispatchSend(ctx, connection, file, options, progress.auditor())
	progress.finish()
	if err != nil {
		return err
	}

	// Print the result.
	fmt.Printf("%s  %s (%d bytes)\n", result, arguments[1], size)

	// Success.
	return nil
}

// sendCommand is the send command.
var sendCommand = &cobra.Command{
	Use:          "send <address> <path>",
	Short:        "Send a file to a receiver",
	Args:         cobra.ExactArgs(2),
	Run:          cmd.Mainify(sendMain),
	SilenceUsage: true,
}

// sendConfiguration stores configuration for the send command.
var sendConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// transferFlags are the hashing, buffering, and compression flags.
	transferFlags
}

func init() {
	// Grab a handle for the command line flags.
	flags := sendCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&sendConfiguration.help, "help", "h", false, "Show help information")

	// Wire up send flags.
	sendConfiguration.register(flags, true)
}
