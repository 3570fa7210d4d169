package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/streamkit-io/streamkit/cmd"
	"github.com/streamkit-io/streamkit/pkg/configuration"
	"github.com/streamkit-io/streamkit/pkg/logging"
	"github.com/streamkit-io/streamkit/pkg/streamkit"
)

var (
	// logger is the root logger, configured by the persistent flags.
	logger *logging.Logger
	// settings is the loaded configuration, before any per-command overrides.
	settings *configuration.Configuration
)

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, _ []string) error {
	// If no commands were given, then print help information and bail. We don't
	// have to worry about warning about arguments being present here (which
	// would be incorrect usage) because arguments can't even reach this point
	// (they will be mistaken for subcommands and a error will be displayed).
	command.Help()

	// Success.
	return nil
}

// rootPreRun configures logging and loads configuration before any command
// runs.
func rootPreRun(_ *cobra.Command, _ []string) error {
	// Determine the log level. Debugging mode raises the default.
	level := logging.LevelWarn
	if streamkit.DebugEnabled {
		level = logging.LevelDebug
	}
	if rootConfiguration.logLevel != "" {
		if err := level.UnmarshalText([]byte(rootConfiguration.logLevel)); err != nil {
			return errors.Wrap(err, "invalid log level specified")
		}
	}
	logger = logging.NewLogger(level, os.Stderr)

	// Load configuration.
	if rootConfiguration.configurationFile != "" {
		c, err := configuration.Load(rootConfiguration.configurationFile)
		if err != nil {
			return errors.Wrap(err, "unable to load configuration file")
		}
		settings = c
		logger.Debugf("Loaded configuration from %s", rootConfiguration.configurationFile)
	} else {
		settings = configuration.Default()
	}

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:               "streamkit",
	Version:           streamkit.Version,
	Short:             "Streamkit moves and digests byte streams between files and sockets",
	RunE:              rootMain,
	PersistentPreRunE: rootPreRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// configurationFile is the path to a YAML or TOML configuration file.
	configurationFile string
	// logLevel is the log level name.
	logLevel string
}

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap, which would otherwise prevent the CLI
	// from being launched outside of a console on Windows.
	cobra.MousetrapHelpText = ""

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("Streamkit version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up persistent flags.
	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.SortFlags = false
	persistentFlags.StringVarP(&rootConfiguration.configurationFile, "config", "c", "", "Specify a YAML or TOML configuration file")
	persistentFlags.StringVar(&rootConfiguration.logLevel, "log-level", "", "Set the log level (disabled|error|warn|info|debug|trace)")

	// Hide Cobra's completion command.
	rootCommand.CompletionOptions.HiddenDefaultCmd = true

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		digestCommand,
		copyCommand,
		sendCommand,
		receiveCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command. Command entry points wrapped with Mainify
	// report their own errors, so only Cobra's usage errors arrive here.
	if err := rootCommand.Execute(); err != nil {
		cmd.Error(err)
		os.Exit(1)
	}
}
