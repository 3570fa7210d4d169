package digest

// String implements fmt.Stringer.String.
func (d Digest64) String() string {
	return Hex(d)
}

// Compare compares the digest to another most-significant-byte first.
func (d Digest64) Compare(other Digest64) int {
	return Compare(d, other)
}

// Less indicates whether or not the digest orders before another.
func (d Digest64) Less(other Digest64) bool {
	return Compare(d, other) < 0
}

// IsZero indicates whether or not the digest is the zero value.
func (d Digest64) IsZero() bool {
	return IsZero(d)
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (d Digest64) MarshalText() ([]byte, error) {
	return []byte(Hex(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (d *Digest64) UnmarshalText(text []byte) error {
	parsed, err := Parse[Digest64](string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String implements fmt.Stringer.String.
func (d Digest128) String() string {
	return Hex(d)
}

// Compare compares the digest to another most-significant-byte first.
func (d Digest128) Compare(other Digest128) int {
	return Compare(d, other)
}

// Less indicates whether or not the digest orders before another.
func (d Digest128) Less(other Digest128) bool {
	return Compare(d, other) < 0
}

// IsZero indicates whether or not the digest is the zero value.
func (d Digest128) IsZero() bool {
	return IsZero(d)
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (d Digest128) MarshalText() ([]byte, error) {
	return []byte(Hex(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (d *Digest128) UnmarshalText(text []byte) error {
	parsed, err := Parse[Digest128](string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String implements fmt.Stringer.String.
func (d Digest256) String() string {
	return Hex(d)
}

// Compare compares the digest to another most-significant-byte first.
func (d Digest256) Compare(other Digest256) int {
	return Compare(d, other)
}

// Less indicates whether or not the digest orders before another.
func (d Digest256) Less(other Digest256) bool {
	return Compare(d, other) < 0
}

// IsZero indicates whether or not the digest is the zero value.
func (d Digest256) IsZero() bool {
	return IsZero(d)
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (d Digest256) MarshalText() ([]byte, error) {
	return []byte(Hex(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (d *Digest256) UnmarshalText(text []byte) error {
	parsed, err := Parse[Digest256](string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String implements fmt.Stringer.String.
func (d Digest512) String() string {
	return Hex(d)
}

// Compare compares the digest to another most-significant-byte first.
func (d Digest512) Compare(other Digest512) int {
	return Compare(d, other)
}

// Less indicates whether or not the digest orders before another.
func (d Digest512) Less(other Digest512) bool {
	return Compare(d, other) < 0
}

// IsZero indicates whether or not the digest is the zero value.
func (d Digest512) IsZero() bool {
	return IsZero(d)
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (d Digest512) MarshalText() ([]byte, error) {
	return []byte(Hex(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (d *Digest512) UnmarshalText(text []byte) error {
	parsed, err := Parse[Digest512](string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
