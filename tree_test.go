// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifact_Tree(t *testing.T) {
	root, err := miniCpn().Tree()
	require.NoError(t, err)

	assert.Equal(t, "MiniCpn", root.Name())
	assert.Nil(t, root.Parent())
	assert.True(t, root.IsDir())
	assert.Equal(t, "", root.Path())

	var names []string
	for _, child := range root.Children() {
		names = append(names, child.Name())
	}
	assert.Equal(t, []string{"components", "styles", "App.tsx"}, names)

	button, err := root.Locate("components/Button.tsx")
	require.NoError(t, err)
	assert.False(t, button.IsDir())
	assert.Equal(t, "components/Button.tsx", button.Path())
	assert.Equal(t, buttonSource, button.File().Content)
	assert.Equal(t, "components", button.Parent().Name())
	assert.True(t, button.Parent().HasChild("Button.tsx"))

	_, err = root.Locate("components/Missing.tsx")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = root.Locate("/")
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

func TestArtifact_TreePaths(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantPath []string
		wantErr  error
	}{
		{
			name:     "cleaned",
			files:    []string{"./src//index.ts", "/abs.ts", `src\win\main.ts`, "../escape.ts"},
			wantPath: []string{"src/index.ts", "abs.ts", "src/win/main.ts", "escape.ts"},
		},
		{name: "file as directory", files: []string{"lib", "lib/x.ts"}, wantErr: ErrNotDirectory},
		{name: "directory as file", files: []string{"lib/x.ts", "lib"}, wantErr: ErrAlreadyChild},
		{name: "empty name", files: []string{""}, wantErr: ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Artifact{ComponentName: "X"}
			for _, name := range tt.files {
				a.Files = append(a.Files, &FileNode{ID: name, Name: name})
			}

			root, err := a.Tree()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)

			for index, want := range tt.wantPath {
				node, lErr := root.Locate(want)
				require.NoError(t, lErr, want)
				assert.Same(t, a.Files[index], node.File())
				assert.Equal(t, want, node.Path())
			}
		})
	}
}

func TestArtifact_TreeDuplicateFile(t *testing.T) {
	first := &FileNode{ID: "a.ts", Name: "a.ts", Content: "1"}
	last := &FileNode{ID: "./lib/../a.ts", Name: "./lib/../a.ts", Content: "2"}
	other := &FileNode{ID: "b.ts", Name: "b.ts"}
	a := &Artifact{ComponentName: "X", Files: []*FileNode{first, other, last}}

	root, err := a.Tree()
	require.NoError(t, err)

	node, err := root.Locate("a.ts")
	require.NoError(t, err)
	assert.Same(t, last, node.File())
	assert.Len(t, root.Children(), 2)

	files, err := root.Files(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []*FileNode{last, other}, files)
}

func TestTree_AddChild(t *testing.T) {
	root := NewTree("root")
	file := newFileTree("f", &FileNode{Name: "f"})

	require.NoError(t, root.AddChild(file))
	assert.Same(t, root, file.Parent())

	assert.True(t, errors.Is(root.AddChild(newFileTree("f", &FileNode{Name: "f"})), ErrAlreadyChild))
	assert.True(t, errors.Is(file.AddChild(NewTree("d")), ErrNotDirectory))
}

func TestTree_Walk(t *testing.T) {
	root, err := miniCpn().Tree()
	require.NoError(t, err)

	comm := make(chan TraverseComm)
	go root.Walk(context.Background(), comm)

	var (
		names  []string
		levels int
	)
	for resl := range comm {
		require.NoError(t, resl.Err())
		if resl.NewPeers() {
			levels++
		}
		names = append(names, resl.Node().Name())
	}

	assert.Equal(t, []string{"MiniCpn", "components", "styles", "App.tsx", "Button.tsx", "app.css"}, names)
	assert.Equal(t, 3, levels)
}

func TestTree_Files(t *testing.T) {
	root, err := miniCpn().Tree()
	require.NoError(t, err)

	files, err := root.Files(context.Background())
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"App.tsx", "components/Button.tsx", "styles/app.css"}, names)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = root.Files(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTree_WalkNil(t *testing.T) {
	var root *Tree

	comm := make(chan TraverseComm, 1)
	root.Walk(context.Background(), comm)

	_, ok := <-comm
	assert.False(t, ok)
}
