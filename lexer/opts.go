// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

// Option defines the Lexer functional option type
type Option func(*Lexer)

// WithConfig applies a Config, filling its missing entries with defaults.
func WithConfig(cfg *Config) Option {
	return func(l *Lexer) {
		cfg.Validate()

		l.logger, l.debug, l.strict, l.readSize = cfg.Logger, cfg.Debug, cfg.Strict, cfg.ReadSize
		WithRawContentTags(cfg.RawContentTags...)(l)
	}
}

// WithStrict configures the error-reporting mode.
func WithStrict(strict bool) Option { return func(l *Lexer) { l.strict = strict } }

// WithRawContentTags adds tag names whose bodies are scanned as raw content.
func WithRawContentTags(names ...string) Option {
	return func(l *Lexer) {
		for _, name := range names {
			l.rawTags[name] = struct{}{}
		}
	}
}

// WithHandler registers an event Handler; handlers are invoked in registration order.
func WithHandler(h Handler) Option {
	return func(l *Lexer) {
		if h != nil {
			l.handlers = append(l.handlers, h)
		}
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithReadSize configures the buffer size used by Pipe.
func WithReadSize(size int) Option {
	return func(l *Lexer) {
		if size > 0 {
			l.readSize = size
		}
	}
}
