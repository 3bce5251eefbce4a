// Package config defines the on-disk configuration format for the rdiff
// command line tool: default block size, strong hash choice, and logging
// level, loaded from an optional YAML file so that repeated invocations
// don't need to repeat the same flags.
package config

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"os"

	"github.com/yrgoldteeth/librsync/pkg/encoding"
	"github.com/yrgoldteeth/librsync/pkg/logging"
	"github.com/yrgoldteeth/librsync/pkg/strongsum"
)

// DefaultBlockSize is used when neither a flag nor a configuration file
// specifies one.
const DefaultBlockSize = 1 << 12 // 4096 bytes

// Configuration is the deserialized form of the rdiff configuration file.
type Configuration struct {
	// BlockSize is the default signature block size, in bytes.
	BlockSize int `yaml:"blockSize,omitempty"`
	// StrongHash names the default strong hash algorithm: "blake2b" (the
	// default) or "sha256".
	StrongHash string `yaml:"strongHash,omitempty"`
	// LogLevel names the default logging level, one of the values accepted
	// by logging.NameToLevel.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		BlockSize:  DefaultBlockSize,
		StrongHash: "blake2b",
		LogLevel:   "info",
	}
}

// Load reads and validates a configuration file at path. If the file does
// not exist, it returns Default with no error.
func Load(path string) (*Configuration, error) {
	config := Default()
	err := encoding.LoadAndUnmarshalYAML(path, config)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	if err := config.EnsureValid(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Save writes the configuration to path atomically.
func (c *Configuration) Save(path string) error {
	return encoding.MarshalAndSaveYAML(path, c)
}

// EnsureValid verifies that the configuration's invariants are respected.
func (c *Configuration) EnsureValid() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("non-positive block size: %d", c.BlockSize)
	}
	if _, err := c.Hasher(); err != nil {
		return err
	}
	if _, ok := logging.NameToLevel(c.LogLevel); c.LogLevel != "" && !ok {
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	return nil
}

// Hasher resolves the configured strong hash name to a strongsum.Hasher.
func (c *Configuration) Hasher() (strongsum.Hasher, error) {
	switch c.StrongHash {
	case "", "blake2b":
		return strongsum.Default(), nil
	case "sha256":
		return strongsum.New(func() hash.Hash { return sha256.New() }), nil
	default:
		return strongsum.Hasher{}, fmt.Errorf("unknown strong hash: %q", c.StrongHash)
	}
}

// Level resolves the configured log level name, falling back to
// logging.LevelInfo if unset.
func (c *Configuration) Level() logging.Level {
	if c.LogLevel == "" {
		return logging.LevelInfo
	}
	level, ok := logging.NameToLevel(c.LogLevel)
	if !ok {
		return logging.LevelInfo
	}
	return level
}
