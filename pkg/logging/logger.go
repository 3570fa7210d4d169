// Package logging provides a leveled, nil-safe logger with hierarchical
// prefixes.
package logging

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/fatih/color"
)

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. Subloggers share their
// parent's output and level. It is safe for concurrent usage.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
	// level is the maximum level that will be logged.
	level Level
	// outputLock serializes writes to output.
	outputLock *sync.Mutex
	// output is the underlying log output.
	output *log.Logger
}

// NewLogger creates a new root logger that writes entries at or below the
// specified level to writer.
func NewLogger(level Level, writer io.Writer) *Logger {
	return &Logger{
		level:      level,
		outputLock: &sync.Mutex{},
		output:     log.New(writer, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix:     prefix,
		level:      l.level,
		outputLock: l.outputLock,
		output:     l.output,
	}
}

// Level returns the logger's level. A nil logger reports LevelDisabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// write is the internal logging method.
func (l *Logger) write(level Level, line string) {
	// Check whether or not the entry should be logged.
	if l == nil || level > l.level {
		return
	}

	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Log.
	l.outputLock.Lock()
	l.output.Print(line)
	l.outputLock.Unlock()
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	l.write(LevelError, color.RedString("Error: %v", err))
}

// Errorf logs formatted error information with an error prefix and red color.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.write(LevelError, color.RedString("Error: "+format, v...))
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	l.write(LevelWarn, color.YellowString("Warning: %v", err))
}

// Warnf logs formatted information with a warning prefix and yellow color.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.write(LevelWarn, color.YellowString("Warning: "+format, v...))
}

// Info logs information with semantics equivalent to fmt.Print.
func (l *Logger) Info(v ...interface{}) {
	l.write(LevelInfo, fmt.Sprint(v...))
}

// Infof logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.write(LevelInfo, fmt.Sprintf(format, v...))
}

// Debug logs information with semantics equivalent to fmt.Print.
func (l *Logger) Debug(v ...interface{}) {
	l.write(LevelDebug, fmt.Sprint(v...))
}

// Debugf logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.write(LevelDebug, fmt.Sprintf(format, v...))
}

// Trace logs information with semantics equivalent to fmt.Print.
func (l *Logger) Trace(v ...interface{}) {
	l.write(LevelTrace, fmt.Sprint(v...))
}

// Tracef logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Tracef(format string, v ...interface{}) {
	l.write(LevelTrace, fmt.Sprintf(format, v...))
}
