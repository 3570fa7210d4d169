package logging

import (
	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/bimap"
)

// Level represents a log level. Levels are ordered, with higher values logging
// more detail.
type Level uint

const (
	// LevelDisabled indicates that logging is completely disabled.
	LevelDisabled Level = iota
	// LevelError indicates that only fatal errors are logged.
	LevelError
	// LevelWarn indicates that both fatal and non-fatal errors are logged.
	LevelWarn
	// LevelInfo indicates that basic execution information is logged.
	LevelInfo
	// LevelDebug indicates that advanced execution information is logged.
	LevelDebug
	// LevelTrace indicates that low-level execution information is logged.
	LevelTrace
)

// levelNames maps levels to their names.
var levelNames = bimap.New[Level, string]().
	MustInsert(LevelDisabled, "disabled").
	MustInsert(LevelError, "error").
	MustInsert(LevelWarn, "warn").
	MustInsert(LevelInfo, "info").
	MustInsert(LevelDebug, "debug").
	MustInsert(LevelTrace, "trace")

// NameToLevel converts a level name to the corresponding Level value. It
// returns false if the name is invalid, in which case LevelDisabled is
// returned.
func NameToLevel(name string) (Level, bool) {
	return levelNames.ByValue(name)
}

// String returns the name of the level.
func (l Level) String() string {
	if name, ok := levelNames.ByKey(l); ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelNames.ByKey(l); !ok {
		return nil, errors.Errorf("unknown log level: %d", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (l *Level) UnmarshalText(text []byte) error {
	level, ok := NameToLevel(string(text))
	if !ok {
		return errors.Errorf("unknown log level: %s", text)
	}
	*l = level
	return nil
}
