// SPDX-License-Identifier: MIT
package artifact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/artifact/lexer"
)

type (
	// Builder assembles Artifacts from lexer events.
	//
	// Tags other than ComponentArtifact & ComponentFile are ignored. A Builder handles one document
	// at a time & is reusable once an Artifact has been completed.
	Builder struct {
		logger logrus.FieldLogger

		onArtifactStart func(*Artifact)
		onArtifactEnd   func(*Artifact)
		onFileStart     func(*FileNode)
		onFileContent   func(file *FileNode, content string)
		onFileEnd       func(*FileNode)

		// artifact & file are the Artifact & FileNode in progress.
		artifact *Artifact
		file     *FileNode
		content  strings.Builder

		errs []error

		debug   bool
		partial bool
	}

	// BuilderOption defines the Builder functional option type.
	BuilderOption func(*Builder)
)

// Building errors.
var (
	ErrInvalidDocument = errors.New("invalid document")
)

var _ lexer.Handler = (*Builder)(nil)

// NewBuilder instantiates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// WithArtifactStart configures a function invoked when an Artifact is opened.
func WithArtifactStart(fn func(*Artifact)) BuilderOption {
	return func(b *Builder) { b.onArtifactStart = fn }
}

// WithArtifactEnd configures a function invoked with each completed Artifact.
func WithArtifactEnd(fn func(*Artifact)) BuilderOption {
	return func(b *Builder) { b.onArtifactEnd = fn }
}

// WithFileStart configures a function invoked when a file is opened.
func WithFileStart(fn func(*FileNode)) BuilderOption {
	return func(b *Builder) { b.onFileStart = fn }
}

// WithFileContent configures a function invoked with a file's cumulative content as it streams in.
func WithFileContent(fn func(file *FileNode, content string)) BuilderOption {
	return func(b *Builder) { b.onFileContent = fn }
}

// WithFileEnd configures a function invoked when a file is closed; its content is trimmed.
func WithFileEnd(fn func(*FileNode)) BuilderOption {
	return func(b *Builder) { b.onFileEnd = fn }
}

// WithBuilderLogger configures the logger option.
func WithBuilderLogger(logger logrus.FieldLogger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// WithBuilderDebug configures the debug option.
func WithBuilderDebug(debug bool) BuilderOption { return func(b *Builder) { b.debug = debug } }

// WithPartial configures the Builder to complete the Artifact in progress at the end of the input.
func WithPartial(partial bool) BuilderOption { return func(b *Builder) { b.partial = partial } }

// Current obtains the Artifact in progress, if any.
func (b *Builder) Current() *Artifact { return b.artifact }

// Err obtains the errors reported by a strict lexer.
func (b *Builder) Err() error {
	if len(b.errs) < 1 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(b.errs...))
}

// OpenTag implements lexer.Handler.
func (b *Builder) OpenTag(tag lexer.TagData) {
	switch tag.Name {
	case ArtifactTag:
		if b.artifact != nil {
			b.log().Warnf("discarding unfinished artifact %q", b.artifact.ComponentName)
		}
		b.endFile()

		b.artifact = &Artifact{ComponentName: tag.Attrs[NameAttr]}
		b.content.Reset()
		if b.onArtifactStart != nil {
			b.onArtifactStart(b.artifact)
		}
	case FileTag:
		if b.file != nil {
			b.endFile()
		}

		name := tag.Attrs[FileNameAttr]
		b.file = &FileNode{ID: name, Name: name, IsEntryFile: tag.Attrs[IsEntryFileAttr] == "true"}
		b.content.Reset()

		if b.artifact != nil {
			b.artifact.Files = append(b.artifact.Files, b.file)
			if b.file.IsEntryFile && b.artifact.EntryFile == "" {
				b.artifact.EntryFile = name
			}
		} else {
			b.log().Debugf("file %q outside of an artifact", name)
		}

		if b.onFileStart != nil {
			b.onFileStart(b.file)
		}
	}
}

// RawContent implements lexer.Handler.
func (b *Builder) RawContent(tag lexer.TagData, text string) {
	if tag.Name != FileTag || b.file == nil {
		return
	}

	b.content.WriteString(text)
	b.file.Content = b.content.String()

	if b.onFileContent != nil {
		b.onFileContent(b.file, b.file.Content)
	}
}

// CloseTag implements lexer.Handler.
func (b *Builder) CloseTag(tag lexer.TagData) {
	switch tag.Name {
	case FileTag:
		b.endFile()
	case ArtifactTag:
		b.endArtifact()
	}
}

// Error implements lexer.Handler.
func (b *Builder) Error(err error) {
	b.errs = append(b.errs, err)
	b.log().WithError(err).Debug("markup error")
}

// Chunk implements lexer.Handler.
func (b *Builder) Chunk(string) {}

// End implements lexer.Handler.
func (b *Builder) End() {
	if b.artifact == nil && b.file == nil {
		return
	}

	if b.partial {
		b.endFile()
		b.endArtifact()

		return
	}

	if b.debug {
		b.log().Debugf("input ended with an incomplete artifact: %s", spew.Sdump(b.artifact))
	}
}

// endFile freezes the file in progress.
func (b *Builder) endFile() {
	file := b.file
	if file == nil {
		return
	}

	file.Content = strings.TrimSpace(b.content.String())
	b.file = nil
	b.content.Reset()

	if b.onFileEnd != nil {
		b.onFileEnd(file)
	}
}

// endArtifact completes the Artifact in progress & hands it over.
func (b *Builder) endArtifact() {
	a := b.artifact
	if a == nil {
		return
	}
	b.endFile()

	a.finalize()
	b.artifact = nil

	if b.debug {
		b.log().Debugf("artifact complete: %s", spew.Sdump(a))
	}
	if b.onArtifactEnd != nil {
		b.onArtifactEnd(a)
	}
}

func (b *Builder) log() logrus.FieldLogger {
	if b.logger == nil {
		b.logger = logrus.New()
	}

	return b.logger
}
