// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the Lexer's operations.
	Config struct {
		Logger logrus.FieldLogger

		// RawContentTags names the tags whose bodies are never parsed as markup.
		RawContentTags []string

		// ReadSize is the buffer size used by Pipe.
		ReadSize int

		Debug  bool
		Strict bool
	}
)

const (
	// DefaultReadSize is the amount of bytes Pipe requests from its source per read.
	DefaultReadSize = 4096

	defBufferSize = 10
)

// DefaultConfig configures the Lexer's Config.
func DefaultConfig() *Config {
	return &Config{
		Logger:   logrus.New(),
		ReadSize: DefaultReadSize,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.ReadSize < 1 {
		c.ReadSize = DefaultReadSize
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
