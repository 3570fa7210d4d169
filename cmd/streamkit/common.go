package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/streamkit-io/streamkit/cmd"
	"github.com/streamkit-io/streamkit/pkg/compression"
	"github.com/streamkit-io/streamkit/pkg/configuration"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

const (
	// preemptionCheckInterval is the number of source operations allowed
	// between cancellation checks.
	preemptionCheckInterval = 16
	// progressUpdateInterval is the minimum interval between progress updates.
	progressUpdateInterval = 100 * time.Millisecond
)

// transferFlags are the flags shared by commands that move or digest data.
type transferFlags struct {
	// algorithm is the hashing algorithm specification.
	algorithm string
	// bufferSize is the buffer size specification.
	bufferSize string
	// compression is the compression algorithm specification.
	compression string
}

// register registers the transfer flags with a flag set. Compression flags are
// only registered if withCompression is true.
func (f *transferFlags) register(flags *pflag.FlagSet, withCompression bool) {
	flags.StringVarP(&f.algorithm, "algorithm", "a", "", "Specify the hashing algorithm ("+algorithmList()+")")
	flags.StringVarP(&f.bufferSize, "buffer-size", "b", "", "Specify the buffer size (e.g. \"64 KiB\")")
	if withCompression {
		flags.StringVar(&f.compression, "compression", "", "Specify the compression algorithm (none|deflate|zstd)")
	}
}

// algorithmList returns a list of supported hashing algorithm names.
func algorithmList() string {
	var result string
	for i, algorithm := range hashing.Algorithms() {
		if i > 0 {
			result += "|"
		}
		result += algorithm.String()
	}
	return result
}

// transferOptions are the resolved parameters for a transfer.
type transferOptions struct {
	// hashing is the hashing algorithm.
	hashing hashing.Algorithm
	// compression is the compression algorithm.
	compression compression.Algorithm
	// bufferSize is the buffer capacity for readers and writers.
	bufferSize int
	// timeout is the per-operation network timeout.
	timeout time.Duration
}

// resolve merges flag overrides into the loaded configuration and validates the
// result.
func (f *transferFlags) resolve(base *configuration.Configuration) (transferOptions, error) {
	// Copy the base configuration so that overrides don't leak.
	c := *base

	// Apply overrides.
	if f.algorithm != "" {
		if err := c.Hashing.UnmarshalText([]byte(f.algorithm)); err != nil {
			return transferOptions{}, errors.Wrap(err, "invalid hashing algorithm")
		}
	}
	if f.bufferSize != "" {
		size, err := humanize.ParseBytes(f.bufferSize)
		if err != nil {
			return transferOptions{}, errors.Wrap(err, "invalid buffer size")
		}
		c.BufferSize = configuration.ByteSize(size)
	}
	if f.compression != "" {
		if err := c.Compression.UnmarshalText([]byte(f.compression)); err != nil {
			return transferOptions{}, errors.Wrap(err, "invalid compression algorithm")
		}
	}

	// Validate the result.
	if err := c.EnsureValid(); err != nil {
		return transferOptions{}, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return transferOptions{
		hashing:     c.Hashing,
		compression: c.Compression,
		bufferSize:  int(c.BufferSize),
		timeout:     time.Duration(c.Timeout),
	}, nil
}

// progressReporter renders transfer progress on a status line.
type progressReporter struct {
	// verb describes the transfer (e.g. "Copied").
	verb string
	// printer is the status line printer. It is nil if progress isn't shown.
	printer *cmd.StatusLinePrinter
	// total is the number of bytes transferred.
	total uint64
	// lastUpdate is the time of the last status line update.
	lastUpdate time.Time
}

// newProgressReporter creates a new progress reporter. Progress is only shown
// if enabled is true, which is typically the case when standard output is a
// terminal.
func newProgressReporter(verb string, enabled bool) *progressReporter {
	reporter := &progressReporter{verb: verb}
	if enabled {
		reporter.printer = &cmd.StatusLinePrinter{}
	}
	return reporter
}

// audit implements stream.Auditor.
func (p *progressReporter) audit(count uint64) {
	p.total += count
	if p.printer != nil && time.Since(p.lastUpdate) >= progressUpdateInterval {
		p.printer.Print(fmt.Sprintf("%s %s", p.verb, humanize.Bytes(p.total)))
		p.lastUpdate = time.Now()
	}
}

// auditor returns the reporter's auditing callback.
func (p *progressReporter) auditor() stream.Auditor {
	return p.audit
}

// finish clears the status line.
func (p *progressReporter) finish() {
	if p.printer != nil {
		p.printer.Clear()
	}
}
