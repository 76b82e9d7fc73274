// SPDX-License-Identifier: MIT

// Package config loads the artifactstream YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/artifact"
	"gitlab.com/fisherprime/artifact/lexer"
)

type (
	// Config is the root of the configuration file.
	Config struct {
		Parser ParserConfig `yaml:"parser"`
		Stream StreamConfig `yaml:"stream"`
		Output OutputConfig `yaml:"output"`
		Log    LogConfig    `yaml:"log"`
	}

	// ParserConfig configures the lexer & Builder.
	ParserConfig struct {
		// RawContentTags are scanned as raw content in addition to ComponentFile.
		RawContentTags []string `yaml:"raw_content_tags"`
		ReadSize       int      `yaml:"read_size"`
		Strict         bool     `yaml:"strict"`
		Partial        bool     `yaml:"partial"`
	}

	// StreamConfig shapes the simulated network stream.
	StreamConfig struct {
		// Delay is a Go duration paused between chunks.
		Delay     string `yaml:"delay"`
		ChunkSize int    `yaml:"chunk_size"`
		Workers   int    `yaml:"workers"`

		delay time.Duration
	}

	// OutputConfig configures extraction output.
	OutputConfig struct {
		Dir string `yaml:"dir"`
	}

	// LogConfig configures the logger.
	LogConfig struct {
		Level  string `yaml:"level"`  // trace, debug, info, warn, error
		Format string `yaml:"format"` // text, json
	}
)

const (
	defChunkSize = 16
	defWorkers   = 4
	defOutputDir = "out"
	defLogLevel  = "info"

	FormatText = "text"
	FormatJSON = "json"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Default obtains the default configuration.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{ReadSize: lexer.DefaultReadSize},
		Stream: StreamConfig{ChunkSize: defChunkSize, Workers: defWorkers},
		Output: OutputConfig{Dir: defOutputDir},
		Log:    LogConfig{Level: defLogLevel, Format: FormatText},
	}
}

// Load reads a configuration file over the defaults; an empty or missing path yields the defaults.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return
}

// Validate populates missing entries with defaults, rejecting malformed ones.
func (c *Config) Validate() (err error) {
	if c.Parser.ReadSize < 1 {
		c.Parser.ReadSize = lexer.DefaultReadSize
	}
	if c.Stream.ChunkSize < 1 {
		c.Stream.ChunkSize = defChunkSize
	}
	if c.Stream.Workers < 1 {
		c.Stream.Workers = defWorkers
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defOutputDir
	}
	if c.Log.Level == "" {
		c.Log.Level = defLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatText
	}

	c.Stream.delay = 0
	if c.Stream.Delay != "" {
		if c.Stream.delay, err = time.ParseDuration(c.Stream.Delay); err != nil {
			return fmt.Errorf("%w: stream.delay: %w", ErrInvalidConfig, err)
		}
		if c.Stream.delay < 0 {
			return fmt.Errorf("%w: stream.delay: negative duration %s", ErrInvalidConfig, c.Stream.Delay)
		}
	}

	if _, err = logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: log.format: unknown format %q", ErrInvalidConfig, c.Log.Format)
	}

	return
}

// DelayDuration obtains the parsed stream delay; Validate must have succeeded.
func (s *StreamConfig) DelayDuration() time.Duration { return s.delay }

// SetDelay overrides the stream delay.
func (s *StreamConfig) SetDelay(delay time.Duration) {
	s.delay, s.Delay = delay, delay.String()
}

// NewLogger creates a logger honoring the log section.
func (c *Config) NewLogger() (logger *logrus.Logger, err error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}

	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if c.Log.Format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return
}

// Artifact derives the parsing configuration.
func (c *Config) Artifact(logger logrus.FieldLogger) *artifact.Config {
	return &artifact.Config{
		Logger:         logger,
		RawContentTags: c.Parser.RawContentTags,
		ReadSize:       c.Parser.ReadSize,
		Workers:        c.Stream.Workers,
		Debug:          c.debug(),
		Strict:         c.Parser.Strict,
		Partial:        c.Parser.Partial,
	}
}

// LexerOptions derives the options of a standalone lexer.
func (c *Config) LexerOptions(logger logrus.FieldLogger) []lexer.Option {
	return []lexer.Option{
		lexer.WithConfig(&lexer.Config{
			Logger:         logger,
			RawContentTags: append([]string{artifact.FileTag}, c.Parser.RawContentTags...),
			ReadSize:       c.Parser.ReadSize,
			Debug:          c.debug(),
			Strict:         c.Parser.Strict,
		}),
	}
}

// debug reports whether the log level enables debug output.
func (c *Config) debug() bool {
	level, err := logrus.ParseLevel(c.Log.Level)
	return err == nil && level >= logrus.DebugLevel
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) { return yaml.Marshal(c) }
