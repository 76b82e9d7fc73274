// SPDX-License-Identifier: MIT

// Package artifact assembles streamed component markup into artifacts: named bundles of files
// whose content is delivered as it arrives.
//
//	<ComponentArtifact name="Name">
//	  <ComponentFile fileName="App.tsx" isEntryFile="true">...</ComponentFile>
//	</ComponentArtifact>
package artifact

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Markup vocabulary.
const (
	ArtifactTag = "ComponentArtifact"
	FileTag     = "ComponentFile"

	NameAttr        = "name"
	FileNameAttr    = "fileName"
	IsEntryFileAttr = "isEntryFile"
)

type (
	// FileNode is a file within an Artifact.
	FileNode struct {
		ID          string
		Name        string
		Content     string
		IsEntryFile bool
	}

	// Artifact is a generated component bundle.
	Artifact struct {
		// Codes maps file names to their content, populated once the Artifact is complete.
		Codes map[string]string

		ComponentName string
		EntryFile     string

		Files []*FileNode
	}
)

// File obtains a file by name.
func (a *Artifact) File(name string) (file *FileNode, ok bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return f, true
		}
	}

	return
}

// Entry obtains the entry file.
func (a *Artifact) Entry() (file *FileNode, ok bool) {
	if a.EntryFile == "" {
		return
	}

	return a.File(a.EntryFile)
}

// Names lists the file names held in Codes, sorted.
func (a *Artifact) Names() (names []string) {
	names = maps.Keys(a.Codes)
	slices.Sort(names)

	return
}

// finalize derives the Codes map from the Files.
func (a *Artifact) finalize() {
	a.Codes = make(map[string]string, len(a.Files))
	for _, f := range a.Files {
		a.Codes[f.Name] = f.Content
	}
}
