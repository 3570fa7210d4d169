package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// StatusLinePrinter provides printing facilities for dynamically updating
// status lines in the console. It supports colorized printing.
type StatusLinePrinter struct {
	// UseStandardError causes the printer to use standard error for its output
	// instead of standard output (the default).
	UseStandardError bool
	// Output overrides the printer's output stream if non-nil.
	Output io.Writer
	// nonEmpty indicates whether or not the printer has printed any non-empty
	// content to the status line.
	nonEmpty bool
}

// output returns the printer's output stream. The color streams are used so
// that color escape sequences are properly handled on all platforms.
func (p *StatusLinePrinter) output() io.Writer {
	if p.Output != nil {
		return p.Output
	} else if p.UseStandardError {
		return color.Error
	}
	return color.Output
}

// Print prints a message to the status line, overwriting any existing content.
// Messages are truncated or padded to a platform-dependent width so that the
// previous content is fully overwritten.
func (p *StatusLinePrinter) Print(message string) {
	fmt.Fprintf(p.output(), statusLineFormat, message)
	p.nonEmpty = true
}

// Clear clears any content on the status line and moves the cursor back to the
// beginning of the line.
func (p *StatusLinePrinter) Clear() {
	fmt.Fprintf(p.output(), statusLineClearFormat, "")
	p.nonEmpty = false
}

// BreakIfNonEmpty prints a newline character if the current line is non-empty.
func (p *StatusLinePrinter) BreakIfNonEmpty() {
	if p.nonEmpty {
		fmt.Fprintln(p.output())
		p.nonEmpty = false
	}
}
