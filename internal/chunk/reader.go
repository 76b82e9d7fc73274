// SPDX-License-Identifier: MIT

// Package chunk simulates a network stream by slicing its source into small, delayed reads.
package chunk

import (
	"context"
	"io"
	"math/rand"
	"time"
)

type (
	// Reader yields its source in chunks of at most size bytes, pausing for delay between reads.
	Reader struct {
		ctx    context.Context
		src    io.Reader
		jitter *rand.Rand

		size  int
		delay time.Duration
		reads int
	}

	// Option defines the Reader functional option type
	Option func(*Reader)
)

const defSize = 16

// NewReader wraps a source in a Reader.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		ctx:  context.Background(),
		src:  src,
		size: defSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithSize configures the maximum chunk size.
func WithSize(size int) Option {
	return func(r *Reader) {
		if size > 0 {
			r.size = size
		}
	}
}

// WithDelay configures the pause preceding every read but the first.
func WithDelay(delay time.Duration) Option { return func(r *Reader) { r.delay = delay } }

// WithJitter randomizes chunk sizes within [1, size].
func WithJitter(rnd *rand.Rand) Option { return func(r *Reader) { r.jitter = rnd } }

// WithContext configures a context that aborts delays.
func WithContext(ctx context.Context) Option { return func(r *Reader) { r.ctx = ctx } }

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.reads > 0 && r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-r.ctx.Done():
			timer.Stop()
			return 0, r.ctx.Err()
		case <-timer.C:
		}
	}
	r.reads++

	size := r.size
	if r.jitter != nil {
		size = 1 + r.jitter.Intn(r.size)
	}
	if len(p) > size {
		p = p[:size]
	}

	return r.src.Read(p)
}

// Reads obtains the amount of reads served.
func (r *Reader) Reads() int { return r.reads }

// Split slices a string into pieces of size bytes, the last possibly shorter.
//
// Multi-byte sequences may be split.
func Split(s string, size int) (pieces []string) {
	if size < 1 {
		size = len(s) + 1
	}

	for len(s) > size {
		pieces = append(pieces, s[:size])
		s = s[size:]
	}
	if len(s) > 0 {
		pieces = append(pieces, s)
	}

	return
}
