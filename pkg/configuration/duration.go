package configuration

import (
	"time"
)

// Duration is a time.Duration value that unmarshals from Go duration strings
// (e.g. "30s" or "1m30s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (d *Duration) UnmarshalText(textBytes []byte) error {
	value, err := time.ParseDuration(string(textBytes))
	if err != nil {
		return err
	}
	*d = Duration(value)
	return nil
}
