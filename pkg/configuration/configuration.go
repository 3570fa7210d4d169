package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/compression"
	"github.com/streamkit-io/streamkit/pkg/encoding"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

const (
	// MaximumBufferSize is the largest buffer size that a configuration may
	// specify.
	MaximumBufferSize = 1 << 30
	// DefaultTimeout is the default per-operation timeout for network
	// transports.
	DefaultTimeout = 30 * time.Second
)

// Configuration is the streamkit configuration.
type Configuration struct {
	// BufferSize is the buffer capacity to use for readers and writers.
	BufferSize ByteSize `yaml:"bufferSize" toml:"bufferSize"`
	// Hashing is the hashing algorithm to use for digests.
	Hashing hashing.Algorithm `yaml:"hashing" toml:"hashing"`
	// Compression is the compression algorithm to use for transfers.
	Compression compression.Algorithm `yaml:"compression" toml:"compression"`
	// Timeout is the per-operation timeout for network transports.
	Timeout Duration `yaml:"timeout" toml:"timeout"`
}

// Default returns the default configuration.
func Default() *Configuration {
	return &Configuration{
		BufferSize:  stream.DefaultBufferSize,
		Hashing:     hashing.AlgorithmSHA256,
		Compression: compression.AlgorithmNone,
		Timeout:     Duration(DefaultTimeout),
	}
}

// Load loads a configuration file from disk, selecting the format based on the
// file extension (".yaml", ".yml", or ".toml"). Any values not specified by the
// file are set to their defaults. If the file does not exist, the default
// configuration is returned. The returned structure is not re-used, so its
// members can be freely mutated.
func Load(path string) (*Configuration, error) {
	// Create a configuration that we can decode into.
	result := &Configuration{}

	// Select the loader.
	var load func(string, interface{}) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		load = encoding.LoadAndUnmarshalYAML
	case ".toml":
		load = encoding.LoadAndUnmarshalTOML
	default:
		return nil, errors.Errorf("unknown configuration file format: %s", path)
	}

	// Attempt to load the configuration from disk.
	if err := load(path, result); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "unable to load configuration")
		}
	}

	// Fill in defaults.
	result.Merge(Default())

	// Success.
	return result, nil
}

// Merge sets any unspecified values in the configuration to the corresponding
// values from other.
func (c *Configuration) Merge(other *Configuration) {
	if c.BufferSize == 0 {
		c.BufferSize = other.BufferSize
	}
	if c.Hashing.IsDefault() {
		c.Hashing = other.Hashing
	}
	if c.Compression.IsDefault() {
		c.Compression = other.Compression
	}
	if c.Timeout == 0 {
		c.Timeout = other.Timeout
	}
}

// EnsureValid ensures that the configuration's invariants are respected.
func (c *Configuration) EnsureValid() error {
	// A nil configuration is not considered valid.
	if c == nil {
		return errors.New("nil configuration")
	}

	// Verify the buffer size.
	if c.BufferSize == 0 {
		return errors.New("zero buffer size")
	} else if c.BufferSize > MaximumBufferSize {
		return errors.Errorf("buffer size too large: %d > %d", c.BufferSize, MaximumBufferSize)
	}

	// Verify the algorithms.
	if !c.Hashing.Supported() {
		return errors.New("unsupported hashing algorithm")
	}
	if !c.Compression.Supported() {
		return errors.New("unsupported compression algorithm")
	}

	// Verify the timeout.
	if c.Timeout < 0 {
		return errors.New("negative timeout")
	}

	// Success.
	return nil
}
