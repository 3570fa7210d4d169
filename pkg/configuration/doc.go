// Package configuration provides loading facilities for streamkit's YAML and
// TOML configuration files.
package configuration
