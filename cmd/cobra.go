// Package cmd provides facilities shared by streamkit's command line entry
// points.
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Mainify wraps an entry point that returns an error and generates a standard
// Cobra entry point. It allows entry points to rely on defer-based cleanup,
// which doesn't occur if the entry point terminates the process itself.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

// DisallowArguments is a Cobra arguments validator that disallows positional
// arguments.
func DisallowArguments(_ *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.Errorf("unexpected arguments provided: %d", len(arguments))
	}
	return nil
}
