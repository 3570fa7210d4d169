package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/streamkit-io/streamkit/cmd"
	"github.com/streamkit-io/streamkit/pkg/digest"
	"github.com/streamkit-io/streamkit/pkg/filesystem"
	"github.com/streamkit-io/streamkit/pkg/must"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

// formatDigest renders a digest in the specified format.
func formatDigest[D digest.Value](value D, format string) (string, error) {
	switch format {
	case "", "hex":
		return digest.Hex(value), nil
	case "base62":
		return digest.Base62(value), nil
	default:
		return "", errors.Errorf("unknown digest format: %s", format)
	}
}

// digestFile computes and formats the digest of source.
func digestFile[D digest.Value](source stream.Source, options transferOptions, format string) (string, uint64, error) {
	result, size, err := digestStream[D](source, options.hashing, options.bufferSize)
	if err != nil {
		return "", 0, err
	}
	formatted, err := formatDigest(result, format)
	return formatted, size, err
}

// dispatchDigest invokes digestFile with the digest type of the configured
// hashing algorithm.
func dispatchDigest(source stream.Source, options transferOptions, format string) (string, uint64, error) {
	switch options.hashing.Size() {
	case 8:
		return digestFile[digest.Digest64](source, options, format)
	case 16:
		return digestFile[digest.Digest128](source, options, format)
	case 32:
		return digestFile[digest.Digest256](source, options, format)
	case 64:
		return digestFile[digest.Digest512](source, options, format)
	default:
		return "", 0, errors.Errorf("unsupported hashing algorithm: %s", options.hashing)
	}
}

// digestMain is the entry point for the digest command.
func digestMain(_ *cobra.Command, arguments []string) error {
	// Resolve options.
	options, err := digestConfiguration.resolve(settings)
	if err != nil {
		return err
	}

	// Open the file.
	source, err := filesystem.OpenSource(arguments[0])
	if err != nil {
		return errors.Wrap(err, "unable to open file")
	}
	defer must.Close(source, logger)

	// Compute the digest.
	formatted, size, err := dispatchDigest(source, options, digestConfiguration.format)
	if err != nil {
		return err
	}
	logger.Debugf("Digested %d bytes using %s", size, options.hashing.Description())

	// Print the result.
	fmt.Printf("%s  %s\n", formatted, arguments[0])

	// Success.
	return nil
}

// digestCommand is the digest command.
var digestCommand = &cobra.Command{
	Use:          "digest <path>",
	Short:        "Compute the digest of a file",
	Args:         cobra.ExactArgs(1),
	Run:          cmd.Mainify(digestMain),
	SilenceUsage: true,
}

// digestConfiguration stores configuration for the digest command.
var digestConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// transferFlags are the hashing and buffering flags.
	transferFlags
	// format is the digest output format.
	format string
}

func init() {
	// Grab a handle for the command line flags.
	flags := digestCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&digestConfiguration.help, "help", "h", false, "Show help information")

	// Wire up digest flags.
	digestConfiguration.register(flags, false)
	flags.StringVarP(&digestConfiguration.format, "format", "f", "hex", "Specify the output format (hex|base62)")
}
