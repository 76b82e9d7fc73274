// SPDX-License-Identifier: MIT
package chunk

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		s    string
		size int
		want []string
	}{
		{name: "even", s: "abcdef", size: 2, want: []string{"ab", "cd", "ef"}},
		{name: "remainder", s: "abcde", size: 2, want: []string{"ab", "cd", "e"}},
		{name: "oversized", s: "abc", size: 10, want: []string{"abc"}},
		{name: "non-positive", s: "abc", size: 0, want: []string{"abc"}},
		{name: "empty", s: "", size: 3, want: nil},
		{name: "split rune", s: "é", size: 1, want: []string{"\xc3", "\xa9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.s, tt.size))
		})
	}
}

func TestReader_Read(t *testing.T) {
	const src = "0123456789abcdefghij"

	r := NewReader(strings.NewReader(src), WithSize(3))

	buffer := make([]byte, 8)
	n, err := r.Read(buffer)
	require.NoError(t, err)
	assert.Equal(t, "012", string(buffer[:n]))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, src[3:], string(rest))
	assert.GreaterOrEqual(t, r.Reads(), len(src)/3)
}

func TestReader_Jitter(t *testing.T) {
	const src = "the quick brown fox jumps over the lazy dog"

	r := NewReader(strings.NewReader(src), WithSize(5), WithJitter(rand.New(rand.NewSource(1))))

	var pieces []string
	buffer := make([]byte, 64)
	for {
		n, err := r.Read(buffer)
		if n > 0 {
			assert.LessOrEqual(t, n, 5)
			pieces = append(pieces, string(buffer[:n]))
		}
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(t, src, strings.Join(pieces, ""))
}

func TestReader_Delay(t *testing.T) {
	r := NewReader(strings.NewReader("abcd"), WithSize(2), WithDelay(5*time.Millisecond))

	start := time.Now()
	got, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "abcd", string(got))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestReader_DelayCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r := NewReader(strings.NewReader("abcd"), WithSize(2), WithDelay(time.Hour), WithContext(ctx))

	buffer := make([]byte, 4)
	n, err := r.Read(buffer)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cancel()
	n, err = r.Read(buffer)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
