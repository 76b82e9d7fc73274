// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"strings"
)

const (
	serIndent     = "  "
	serLineEnding = "\n"
)

// Serialize transforms a Tree into an indented listing, one node per line.
//
// Directories carry a trailing `/`, children follow the order defined by Tree.Children.
func (t *Tree) Serialize(ctx context.Context) (output string, err error) {
	serChan := make(chan string)
	go func() {
		t.serialize(ctx, 0, serChan)
		close(serChan)
	}()

	var buffer strings.Builder
	for value := range serChan {
		if _, err = buffer.WriteString(value); err != nil {
			// Invalidate serialization output; drain the producer.
			for range serChan {
			}
			return
		}
	}

	if err = ctx.Err(); err != nil {
		return
	}
	output = buffer.String()

	return
}

// serialize performs the serialization grunt work.
func (t *Tree) serialize(ctx context.Context, depth int, serChan chan string) {
	if t == nil {
		return
	}

	line := strings.Repeat(serIndent, depth) + t.name
	if t.IsDir() {
		line += pathSeparator
	}
	serChan <- line + serLineEnding

	select {
	case <-ctx.Done():
		// NOTE: context error captured in [Tree.Serialize].
		return
	default:
		for _, child := range t.Children() {
			child.serialize(ctx, depth+1, serChan)
		}
	}
}
