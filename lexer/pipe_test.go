// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gitlab.com/fisherprime/artifact/internal/chunk"
)

func TestLexer_Pipe(t *testing.T) {
	tests := []struct {
		name string
		opts []chunk.Option
	}{
		{name: "single bytes", opts: []chunk.Option{chunk.WithSize(1)}},
		{name: "small chunks", opts: []chunk.Option{chunk.WithSize(5)}},
		{name: "whole", opts: []chunk.Option{chunk.WithSize(len(document))}},
	}

	want := normalize(scan(t, []string{document}, WithRawContentTags(fileTag)).Items)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(Collector)
			l := New(WithHandler(c), WithRawContentTags(fileTag), WithReadSize(64))

			src := chunk.NewReader(strings.NewReader(document), tt.opts...)
			require.NoError(t, l.Pipe(context.Background(), src))

			assert.Equal(t, want, normalize(c.Items))
		})
	}
}

func TestLexer_PipeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := new(Collector)
	l := New(WithHandler(c))

	err := l.Pipe(ctx, strings.NewReader("<a></a>"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.Items)

	// The Lexer remains usable.
	require.NoError(t, l.Pipe(context.Background(), strings.NewReader("<a></a>")))
	assert.Equal(t, []string{"+a", "-a"}, tagTrace(c.Items))
}

func TestLexer_PipeReadError(t *testing.T) {
	c := new(Collector)
	l := New(WithHandler(c))

	err := l.Pipe(context.Background(), iotest.ErrReader(errors.New("connection reset")))
	assert.ErrorIs(t, err, ErrRead)
	assert.Contains(t, err.Error(), "connection reset")

	for _, item := range c.Items {
		assert.NotEqual(t, ItemEnd, item.ID)
	}
}

// stallReader reads nothing for stalls calls before each read of its source.
type stallReader struct {
	src    io.Reader
	stalls int
	count  int
}

func (r *stallReader) Read(p []byte) (int, error) {
	if r.count < r.stalls {
		r.count++
		return 0, nil
	}
	r.count = 0

	return r.src.Read(p)
}

func TestLexer_PipeNoProgress(t *testing.T) {
	t.Run("stuck", func(t *testing.T) {
		c := new(Collector)
		l := New(WithHandler(c))

		err := l.Pipe(context.Background(), &stallReader{src: strings.NewReader("<a>"), stalls: maxEmptyReads * 2})
		assert.ErrorIs(t, err, ErrRead)
		assert.ErrorIs(t, err, io.ErrNoProgress)
		assert.Empty(t, c.Items)
	})

	t.Run("slow", func(t *testing.T) {
		c := new(Collector)
		l := New(WithHandler(c), WithReadSize(1))

		src := &stallReader{src: strings.NewReader("<a>x</a>"), stalls: maxEmptyReads - 1}
		require.NoError(t, l.Pipe(context.Background(), src))
		require.NotEmpty(t, c.Items)
		assert.Equal(t, ItemEnd, c.Items[len(c.Items)-1].ID)
	})
}

func TestLex(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := chunk.NewReader(strings.NewReader(document), chunk.WithSize(3))

	var items []Item
	for item := range Lex(context.Background(), src, WithRawContentTags(fileTag)) {
		items = append(items, item)
	}

	require.NotEmpty(t, items)
	assert.Equal(t, ItemEnd, items[len(items)-1].ID)
	assert.Equal(t, normalize(scan(t, []string{document}, WithRawContentTags(fileTag)).Items), normalize(items))
}

func TestLex_ReadError(t *testing.T) {
	defer goleak.VerifyNone(t)

	var items []Item
	for item := range Lex(context.Background(), iotest.ErrReader(errors.New("boom"))) {
		items = append(items, item)
	}

	require.Len(t, items, 1)
	assert.Equal(t, ItemError, items[0].ID)
	assert.ErrorIs(t, items[0].Err, ErrRead)
}

func TestLex_Canceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := chunk.NewReader(
		strings.NewReader(document),
		chunk.WithSize(1),
		chunk.WithDelay(time.Millisecond),
		chunk.WithContext(ctx),
	)

	received := 0
	for item := range Lex(ctx, src, WithRawContentTags(fileTag)) {
		received++
		assert.NotEqual(t, ItemEnd, item.ID)

		if received == 3 {
			cancel()
		}
	}

	assert.GreaterOrEqual(t, received, 3)
}
