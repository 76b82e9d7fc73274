// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal

type (
	// Tree defines an n-ary tree holding an Artifact's directories & files.
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Tree struct {
		// parent contains a reference to the upper Tree.
		parent *Tree

		// children holds references to nodes at a lower level.
		children children

		// file is nil for directories.
		file *FileNode

		name string
	}

	// List is a type wrapper for []*Tree.
	List []*Tree

	children map[string]*Tree

	// TraverseComm defines a channel message to communicate info between Tree operations & it's
	// callers.
	TraverseComm struct {
		node     *Tree
		err      error
		newPeers bool
	}
)

const (
	traverseBufferSize = 10

	pathSeparator = "/"
)

// Errors encountered when handling a Tree.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyChild = errors.New("is a child of")
	ErrNotDirectory = errors.New("is not a directory")
	ErrInvalidPath  = errors.New("invalid file path")
)

// NewTree instantiates a directory Tree.
func NewTree(name string) *Tree {
	return &Tree{
		name:     name,
		children: make(children),
	}
}

// newFileTree instantiates a file Tree.
func newFileTree(name string, file *FileNode) *Tree { return &Tree{name: name, file: file} }

// Tree arranges the Artifact's files by their `/` separated names, under a root named after the
// component.
func (a *Artifact) Tree() (root *Tree, err error) {
	root = NewTree(a.ComponentName)

	for _, file := range a.Files {
		var segments []string
		if segments, err = splitPath(file.Name); err != nil {
			return
		}

		dir := root
		for _, segment := range segments[:len(segments)-1] {
			child, ok := dir.children[segment]
			if !ok {
				child = NewTree(segment)
				if err = dir.AddChild(child); err != nil {
					return
				}
			}
			if !child.IsDir() {
				err = fmt.Errorf("(%s) %w, required by (%s)", child.Path(), ErrNotDirectory, file.Name)
				return
			}
			dir = child
		}

		// A repeated file name replaces the earlier copy.
		last := segments[len(segments)-1]
		if child, ok := dir.children[last]; ok && !child.IsDir() {
			child.file = file
			continue
		}
		if err = dir.AddChild(newFileTree(last, file)); err != nil {
			return
		}
	}

	return
}

// Name retrieves the Tree's name.
func (t *Tree) Name() string { return t.name }

// Parent retrieves the Tree's parent reference.
func (t *Tree) Parent() *Tree { return t.parent }

// File retrieves the Tree's file, nil for directories.
func (t *Tree) File() *FileNode { return t.file }

// IsDir reports whether the Tree is a directory.
func (t *Tree) IsDir() bool { return t.file == nil }

// Path obtains the `/` separated path from the root, excluding the root's name.
func (t *Tree) Path() string {
	var segments []string
	for node := t; node.parent != nil; node = node.parent {
		segments = append(segments, node.name)
	}
	slices.Reverse(segments)

	return strings.Join(segments, pathSeparator)
}

// HasChild checks for the existence of an immediate child.
func (t *Tree) HasChild(name string) (ok bool) {
	_, ok = t.children[name]
	return
}

// AddChild to a directory Tree.
func (t *Tree) AddChild(child *Tree) (err error) {
	if !t.IsDir() {
		err = fmt.Errorf("(%s) %w", t.Path(), ErrNotDirectory)
		return
	}

	// Search for existing immediate child.
	if t.HasChild(child.name) {
		err = fmt.Errorf("(%s) %w (%s)", child.name, ErrAlreadyChild, t.name)
		return
	}

	child.parent = t
	t.children[child.name] = child

	return
}

// Children lists the immediate children, directories first, each group sorted by name.
func (t *Tree) Children() (list List) {
	names := maps.Keys(t.children)
	slices.Sort(names)

	list = make(List, len(names))
	for index, name := range names {
		list[index] = t.children[name]
	}
	slices.SortStableFunc(list, func(a, b *Tree) int {
		switch {
		case a.IsDir() == b.IsDir():
			return 0
		case a.IsDir():
			return -1
		default:
			return 1
		}
	})

	return
}

// Locate searches for a `/` separated path relative to the Tree.
func (t *Tree) Locate(filePath string) (node *Tree, err error) {
	segments, err := splitPath(filePath)
	if err != nil {
		return
	}

	node = t
	for _, segment := range segments {
		child, ok := node.children[segment]
		if !ok {
			node, err = nil, fmt.Errorf("(%s) %w", filePath, ErrNotFound)
			return
		}
		node = child
	}

	return
}

// Files lists the Tree's files in level order.
func (t *Tree) Files(ctx context.Context) (files []*FileNode, err error) {
	comm := make(chan TraverseComm, traverseBufferSize)

	go t.Walk(ctx, comm)

	for resl := range comm {
		if err = resl.err; err != nil {
			return
		}

		if resl.node.file != nil {
			files = append(files, resl.node.file)
		}
	}

	return
}

// Walk performs level-order traversal on a Tree, pushing its nodes to its channel argument.
//
// Children are visited in the order defined by Children. A context.Context is used to terminate
// the walk operation.
func (t *Tree) Walk(ctx context.Context, comm chan TraverseComm) {
	defer close(comm)

	if t == nil {
		return
	}

	// Level order traversal.
	queue := List{t}

	for len(queue) > 0 {
		qLen := len(queue)

		newPeers := true
		for ; qLen > 0; qLen-- {
			// Pop from queue.
			var front *Tree
			front, queue = queue[0], queue[1:]

			if err := ctx.Err(); err != nil {
				comm <- TraverseComm{err: err}
				return
			}
			comm <- TraverseComm{node: front, newPeers: newPeers}
			newPeers = false

			queue = append(queue, front.Children()...)
		}
	}
}

// Node obtains the visited node.
func (c TraverseComm) Node() *Tree { return c.node }

// Err obtains the walk's error.
func (c TraverseComm) Err() error { return c.err }

// NewPeers reports whether the node starts a new level.
func (c TraverseComm) NewPeers() bool { return c.newPeers }

// splitPath cleans a file name into its path segments.
func splitPath(name string) (segments []string, err error) {
	cleaned := strings.TrimPrefix(path.Clean(pathSeparator+strings.ReplaceAll(name, `\`, pathSeparator)), pathSeparator)
	if cleaned == "" {
		err = fmt.Errorf("%w: %q", ErrInvalidPath, name)
		return
	}

	return strings.Split(cleaned, pathSeparator), nil
}
