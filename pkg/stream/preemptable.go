package stream

import (
	"errors"
)

var (
	// ErrPreempted indicates that a source or sink operation was preempted.
	ErrPreempted = errors.New("operation preempted")
)

// preemptionChecker tracks operation counts between preemption checks.
type preemptionChecker struct {
	// cancelled is the channel that, when closed, indicates preemption.
	cancelled <-chan struct{}
	// checkInterval is the number of operations to allow between preemption
	// checks.
	checkInterval uint
	// operationCount is the number of operations since the last preemption
	// check.
	operationCount uint
}

// preempted records an operation and reports whether or not it should be
// preempted.
func (c *preemptionChecker) preempted() bool {
	if c.operationCount == c.checkInterval {
		c.operationCount = 0
		select {
		case <-c.cancelled:
			return true
		default:
		}
	} else {
		c.operationCount++
	}
	return false
}

// preemptableSource is the Source implementation underlying
// NewPreemptableSource.
type preemptableSource struct {
	preemptionChecker
	// source is the underlying source.
	source Source
}

// NewPreemptableSource wraps a Source and provides preemption capabilities for
// long streaming operations. It takes an underlying source, a channel that
// (once closed) indicates cancellation, and an interval that specifies the
// maximum number of Read calls that should be processed between cancellation
// checks. If interval is 0, a cancellation check will be performed before every
// read. A preempted read fails with ErrPreempted.
func NewPreemptableSource(source Source, cancelled <-chan struct{}, interval uint) Source {
	return &preemptableSource{
		preemptionChecker: preemptionChecker{cancelled: cancelled, checkInterval: interval},
		source:            source,
	}
}

// Read implements Source.Read.
func (s *preemptableSource) Read(buffer []byte) (int, error) {
	if s.preempted() {
		return 0, ErrPreempted
	}
	return s.source.Read(buffer)
}

// preemptableSink is the Sink implementation underlying NewPreemptableSink.
type preemptableSink struct {
	preemptionChecker
	// sink is the underlying sink.
	sink Sink
}

// NewPreemptableSink is the Sink analog of NewPreemptableSource.
func NewPreemptableSink(sink Sink, cancelled <-chan struct{}, interval uint) Sink {
	return &preemptableSink{
		preemptionChecker: preemptionChecker{cancelled: cancelled, checkInterval: interval},
		sink:              sink,
	}
}

// Write implements Sink.Write.
func (s *preemptableSink) Write(buffer []byte) (int, error) {
	if s.preempted() {
		return 0, ErrPreempted
	}
	return s.sink.Write(buffer)
}
