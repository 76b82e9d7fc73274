// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/artifact/lexer"
)

type (
	// Config defines configuration options for the Parse & ParseAll operations.
	Config struct {
		// Logger for parsing messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger

		// RawContentTags are scanned as raw content in addition to ComponentFile.
		RawContentTags []string

		// ReadSize is the amount of bytes requested from a source per read.
		ReadSize int
		// Workers limits the amount of documents ParseAll handles concurrently.
		Workers int

		Debug bool
		// Strict fails documents with markup errors.
		Strict bool
		// Partial completes an Artifact left open at the end of a document.
		Partial bool
	}
)

const defWorkers = 4

// Parsing errors.
var (
	ErrParse = errors.New("failed to parse document")
)

// DefConfig obtains the package's default Config.
func DefConfig() *Config {
	return &Config{
		Logger:   logrus.New(),
		ReadSize: lexer.DefaultReadSize,
		Workers:  defWorkers,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.ReadSize < 1 {
		c.ReadSize = lexer.DefaultReadSize
	}
	if c.Workers < 1 {
		c.Workers = defWorkers
	}
}

// NewLexer creates a lexer that scans ComponentFile bodies as raw content, wired to the Builder.
//
// The lexer is lenient unless configured otherwise; the Builder inherits its logger when it has
// none.
func NewLexer(b *Builder, opts ...lexer.Option) *lexer.Lexer {
	options := make([]lexer.Option, 0, len(opts)+2)
	options = append(options, lexer.WithRawContentTags(FileTag))
	options = append(options, opts...)
	options = append(options, lexer.WithHandler(b))

	l := lexer.New(options...)
	if b.logger == nil {
		b.logger = l.Logger()
	}

	return l
}

// Parse reads a document, returning its completed Artifacts in input order.
//
// Artifacts completed before a failure are returned alongside the error.
func Parse(ctx context.Context, src io.Reader, cfg *Config) (artifacts []*Artifact, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	b := NewBuilder(
		WithBuilderLogger(cfg.Logger),
		WithBuilderDebug(cfg.Debug),
		WithPartial(cfg.Partial),
		WithArtifactEnd(func(a *Artifact) { artifacts = append(artifacts, a) }),
	)
	l := NewLexer(b,
		lexer.WithLogger(cfg.Logger),
		lexer.WithDebug(cfg.Debug),
		lexer.WithStrict(cfg.Strict),
		lexer.WithReadSize(cfg.ReadSize),
		lexer.WithRawContentTags(cfg.RawContentTags...),
	)

	if err = l.Pipe(ctx, src); err != nil {
		err = fmt.Errorf("%w: %w", ErrParse, err)
		return
	}
	if err = b.Err(); err != nil {
		err = fmt.Errorf("%w: %w", ErrParse, err)
		return
	}

	cfg.Logger.Debugf("parsed %d artifact(s) from %d byte(s)", len(artifacts), l.Offset())

	return
}

// ParseString parses an in-memory document.
func ParseString(ctx context.Context, doc string, cfg *Config) ([]*Artifact, error) {
	return Parse(ctx, strings.NewReader(doc), cfg)
}
