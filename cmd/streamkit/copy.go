package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/streamkit-io/streamkit/cmd"
	"github.com/streamkit-io/streamkit/pkg/compression"
	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/filesystem"
	"github.com/streamkit-io/streamkit/pkg/must"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

// copyFile performs a verified copy and formats the resulting digest.
func copyFile[D digest.Value](
	ctx context.Context,
	source stream.Source,
	sink stream.Sink,
	inputCompression compression.Algorithm,
	options transferOptions,
) (string, uint64, error) {
	result, size, err := copyStream[D](ctx, source, sink, inputCompression, options)
	if err != nil {
		return "", 0, err
	}
	return digest.Hex(result), size, nil
}

// dispatchCopy invokes copyFile with the digest type of the configured hashing
// algorithm.
func dispatchCopy(
	ctx context.Context,
	source stream.Source,
	sink stream.Sink,
	inputCompression compression.Algorithm,
	options transferOptions,
) (string, uint64, error) {
	switch options.hashing.Size() {
	case 8:
		return copyFile[digest.Digest64](ctx, source, sink, inputCompression, options)
	case 16:
		return copyFile[digest.Digest128](ctx, source, sink, inputCompression, options)
	case 32:
		return copyFile[digest.Digest256](ctx, source, sink, inputCompression, options)
	case 64:
		return copyFile[digest.Digest512](ctx, source, sink, inputCompression, options)
	default:
		return "", 0, errors.Errorf("unsupported hashing algorithm: %s", options.hashing)
	}
}

// copyMain is the entry point for the copy command.
func copyMain(_ *cobra.Command, arguments []string) error {
	// Resolve options.
	options, err := copyConfiguration.resolve(settings)
	if err != nil {
		return err
	}
	inputCompression := compression.AlgorithmNone
	if copyConfiguration.inputCompression != "" {
		if err := inputCompression.UnmarshalText([]byte(copyConfiguration.inputCompression)); err != nil {
			return errors.Wrap(err, "invalid input compression algorithm")
		}
	}

	// Set up cancellation on termination signals.
	ctx, stop := cmd.TerminationContext()
	defer stop()

	// Open the source.
	source, err := filesystem.OpenSource(arguments[0])
	if err != nil {
		return errors.Wrap(err, "unable to open source")
	}
	defer must.Close(source, logger)

	// Create the destination. If the copy doesn't commit, closure discards it.
	destination, err := filesystem.CreateAtomicSink(arguments[1], source.Mode(), logger)
	if err != nil {
		return errors.Wrap(err, "unable to create destination")
	}
	defer must.Close(destination, logger)

	// Perform the copy with progress reporting.
	progress := newProgressReporter("Copied", cmd.IsTerminal(os.Stdout))
	sink := stream.NewAuditSink(destination, progress.auditor())
	result, size, err := dispatchCopy(ctx, source, sink, inputCompression, options)
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

// copyCommand is the copy command.
var copyCommand = &cobra.Command{
	Use:          "copy <source> <destination>",
	Short:        "Copy a file with digest verification",
	Args:         cobra.ExactArgs(2),
	Run:          cmd.Mainify(copyMain),
	SilenceUsage: true,
}

// copyConfiguration stores configuration for the copy command.
var copyConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// transferFlags are the hashing, buffering, and compression flags.
	transferFlags
	// inputCompression is the compression algorithm of the source.
	inputCompression string
}

func init() {
	// Grab a handle for the command line flags.
	flags := copyCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&copyConfiguration.help, "help", "h", false, "Show help information")

	// Wire up copy flags.
	copyConfiguration.register(flags, true)
	flags.StringVar(&copyConfiguration.inputCompression, "input-compression", "", "Decompress the source (none|deflate|zstd)")
}
