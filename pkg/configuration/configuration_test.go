package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/streamkit-io/streamkit/pkg/compression"
	"github.com/streamkit-io/streamkit/pkg/hashing"
	"github.com/streamkit-io/streamkit/pkg/stream"
)

const (
	testConfigurationGibberish = "[a+1a4"
	testConfigurationTOML      = `bufferSize = "1 MiB"
hashing = "xxh128"
compression = "zstd"
timeout = "5s"
`
	testConfigurationYAML = `bufferSize: 4096
hashing: blake2b-256
`
	testConfigurationUnknownKey = `bufferSize: 4096
unknown: true
`
)

// writeTestFile writes contents to a file with the specified name in a
// temporary directory and returns its path.
func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal("unable to write test file:", err)
	}
	return path
}

// TestLoadNonExistent tests that loading a non-existent file yields defaults.
func TestLoadNonExistent(t *testing.T) {
	if c, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Error("load from non-existent path failed:", err)
	} else if c == nil {
		t.Error("load from non-existent path returned nil configuration")
	} else if *c != *Default() {
		t.Error("load from non-existent path did not return defaults")
	}
}

// TestLoadEmpty tests that loading an empty file yields defaults.
func TestLoadEmpty(t *testing.T) {
	for _, name := range []string{"empty.yaml", "empty.toml"} {
		if c, err := Load(writeTestFile(t, name, "")); err != nil {
			t.Errorf("load from empty file (%s) failed: %v", name, err)
		} else if *c != *Default() {
			t.Errorf("load from empty file (%s) did not return defaults", name)
		}
	}
}

// TestLoadGibberish tests that loading a malformed file fails.
func TestLoadGibberish(t *testing.T) {
	for _, name := range []string{"gibberish.yaml", "gibberish.toml"} {
		if _, err := Load(writeTestFile(t, name, testConfigurationGibberish)); err == nil {
			t.Errorf("load did not fail on gibberish configuration (%s)", name)
		}
	}
}

// TestLoadUnknownExtension tests that unknown file formats are rejected.
func TestLoadUnknownExtension(t *testing.T) {
	if _, err := Load(writeTestFile(t, "config.json", "{}")); err == nil {
		t.Error("load did not fail for unknown extension")
	}
}

// TestLoadUnknownKey tests that unknown keys are rejected.
func TestLoadUnknownKey(t *testing.T) {
	if _, err := Load(writeTestFile(t, "config.yml", testConfigurationUnknownKey)); err == nil {
		t.Error("load did not fail for unknown key")
	}
}

// TestLoadTOML tests loading a TOML configuration.
func TestLoadTOML(t *testing.T) {
	c, err := Load(writeTestFile(t, "config.toml", testConfigurationTOML))
	if err != nil {
		t.Fatal("load from valid configuration failed:", err)
	}
	if c.BufferSize != 1024*1024 {
		t.Error("unexpected buffer size:", c.BufferSize)
	}
	if c.Hashing != hashing.AlgorithmXXH128 {
		t.Error("unexpected hashing algorithm:", c.Hashing)
	}
	if c.Compression != compression.AlgorithmZstandard {
		t.Error("unexpected compression algorithm:", c.Compression)
	}
	if time.Duration(c.Timeout) != 5*time.Second {
		t.Error("unexpected timeout:", time.Duration(c.Timeout))
	}
	if err := c.EnsureValid(); err != nil {
		t.Error("valid configuration failed validation:", err)
	}
}

// TestLoadYAML tests loading a YAML configuration with partial values.
func TestLoadYAML(t *testing.T) {
	c, err := Load(writeTestFile(t, "config.yaml", testConfigurationYAML))
	if err != nil {
		t.Fatal("load from valid configuration failed:", err)
	}
	if c.BufferSize != 4096 {
		t.Error("unexpected buffer size:", c.BufferSize)
	}
	if c.Hashing != hashing.AlgorithmBLAKE2b256 {
		t.Error("unexpected hashing algorithm:", c.Hashing)
	}
	if c.Compression != compression.AlgorithmNone {
		t.Error("compression did not default:", c.Compression)
	}
	if time.Duration(c.Timeout) != DefaultTimeout {
		t.Error("timeout did not default:", time.Duration(c.Timeout))
	}
}

// TestEnsureValid tests configuration validation.
func TestEnsureValid(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		configuration *Configuration
		expectFailure bool
	}{
		{nil, true},
		{Default(), false},
		{&Configuration{}, true},
		{&Configuration{BufferSize: stream.DefaultBufferSize}, true},
		{&Configuration{
			BufferSize:  MaximumBufferSize + 1,
			Hashing:     hashing.AlgorithmSHA256,
			Compression: compression.AlgorithmNone,
		}, true},
		{&Configuration{
			BufferSize:  1,
			Hashing:     hashing.AlgorithmSHA256,
			Compression: compression.AlgorithmNone,
			Timeout:     -1,
		}, true},
		{&Configuration{
			BufferSize:  1,
			Hashing:     hashing.AlgorithmXXH3,
			Compression: compression.AlgorithmDeflate,
		}, false},
	}

	// Process test cases.
	for i, testCase := range testCases {
		err := testCase.configuration.EnsureValid()
		if err == nil && testCase.expectFailure {
			t.Errorf("test case %d: validation succeeded unexpectedly", i)
		} else if err != nil && !testCase.expectFailure {
			t.Errorf("test case %d: validation failed unexpectedly: %v", i, err)
		}
	}
}

// TestByteSizeUnmarshal tests human-friendly byte size parsing.
func TestByteSizeUnmarshal(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		text          string
		expected      ByteSize
		expectFailure bool
	}{
		{"", 0, true},
		{"lots", 0, true},
		{"65536", 65536, false},
		{"64 KiB", 65536, false},
		{"1 MB", 1000000, false},
	}

	// Process test cases.
	for _, testCase := range testCases {
		var size ByteSize
		if err := size.UnmarshalText([]byte(testCase.text)); err != nil {
			if !testCase.expectFailure {
				t.Errorf("unable to unmarshal text (%s): %s", testCase.text, err)
			}
		} else if testCase.expectFailure {
			t.Error("unmarshaling succeeded unexpectedly for text:", testCase.text)
		} else if size != testCase.expected {
			t.Errorf("unmarshaled size (%d) does not match expected (%d)", size, testCase.expected)
		}
	}
}
