// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads caps the consecutive `(0, nil)` reads tolerated from a source.
const maxEmptyReads = 100

// Piping errors.
var (
	ErrRead = errors.New("failed to read source")
)

type (
	// itemSender forwards events over a channel, giving up once its context is done.
	itemSender struct {
		ctx context.Context
		c   chan<- Item
	}
)

// Pipe writes the source's chunks to the Lexer, closing the Lexer once the source is exhausted.
//
// The context is checked between reads; on cancelation the Lexer is left open, in a resumable
// state. Read errors are returned without closing the Lexer, as is io.ErrNoProgress for a source
// repeatedly reading nothing.
func (l *Lexer) Pipe(ctx context.Context, src io.Reader) (err error) {
	buffer := make([]byte, l.readSize)
	empty := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, rErr := src.Read(buffer)
		if n > 0 {
			empty = 0
			if _, err = l.Write(buffer[:n]); err != nil {
				return
			}
		}

		switch {
		case rErr == nil:
			if n > 0 {
				break
			}
			if empty++; empty >= maxEmptyReads {
				return fmt.Errorf("%w: %w", ErrRead, io.ErrNoProgress)
			}
		case errors.Is(rErr, io.EOF):
			return l.Close()
		default:
			return fmt.Errorf("%w: %w", ErrRead, rErr)
		}
	}
}

// Lex pipes the source through a new Lexer in a separate goroutine, communicating its events as
// Items over the returned channel.
//
// The channel is closed after the ItemEnd Item, a piping failure (sent as an ItemError Item) or
// the context's cancelation.
func Lex(ctx context.Context, src io.Reader, opts ...Option) <-chan Item {
	c := make(chan Item, defBufferSize)

	sender := &itemSender{ctx: ctx, c: c}
	options := make([]Option, 0, len(opts)+1)
	options = append(options, opts...)
	options = append(options, WithHandler(sender))

	go func() {
		defer close(c)

		l := New(options...)
		if err := l.Pipe(ctx, src); err != nil && ctx.Err() == nil {
			sender.send(Item{ID: ItemError, Err: err})
		}
	}()

	return c
}

func (s *itemSender) send(item Item) {
	select {
	case s.c <- item:
	case <-s.ctx.Done():
	}
}

// OpenTag implements Handler.
func (s *itemSender) OpenTag(tag TagData) { s.send(Item{ID: ItemOpenTag, Tag: tag}) }

// CloseTag implements Handler.
func (s *itemSender) CloseTag(tag TagData) { s.send(Item{ID: ItemCloseTag, Tag: tag}) }

// RawContent implements Handler.
func (s *itemSender) RawContent(tag TagData, text string) {
	s.send(Item{ID: ItemRawContent, Tag: tag, Val: text})
}

// Error implements Handler.
func (s *itemSender) Error(err error) { s.send(Item{ID: ItemError, Err: err}) }

// Chunk implements Handler.
func (s *itemSender) Chunk(chunk string) { s.send(Item{ID: ItemChunk, Val: chunk}) }

// End implements Handler.
func (s *itemSender) End() { s.send(Item{ID: ItemEnd}) }
