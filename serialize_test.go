// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Serialize(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		wantOutput string
	}{
		{name: "empty", wantOutput: "X/\n"},
		{
			name:  "nested",
			files: []string{"z.ts", "a/b/c.ts", "a/a.ts", "b.ts", "a/b/d.ts"},
			wantOutput: `X/
  a/
    b/
      c.ts
      d.ts
    a.ts
  b.ts
  z.ts
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Artifact{ComponentName: "X"}
			for _, name := range tt.files {
				a.Files = append(a.Files, &FileNode{ID: name, Name: name})
			}

			root, err := a.Tree()
			require.NoError(t, err)

			gotOutput, err := root.Serialize(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, gotOutput)
		})
	}
}

func TestTree_SerializeCanceled(t *testing.T) {
	root, err := miniCpn().Tree()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gotOutput, err := root.Serialize(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gotOutput)
}

func TestTree_SerializeNil(t *testing.T) {
	var root *Tree

	gotOutput, err := root.Serialize(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, gotOutput)
}
