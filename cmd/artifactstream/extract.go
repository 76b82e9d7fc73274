// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/artifact"
)

const (
	defComponentDir = "artifact"

	dirPerm  = 0o755
	filePerm = 0o644
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		outDir  string
		partial bool
	)

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Write every artifact file to the output directory",
		Long: `Parse the sources concurrently, writing each artifact's files to
<out>/<componentName>/<fileName>. Use "-" to read the standard input.

TryCatchError & NewComponentId payloads found in a source are reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("out") {
				a.cfg.Output.Dir = outDir
			}
			if cmd.Flags().Changed("partial") {
				a.cfg.Parser.Partial = partial
			}

			return a.extract(cmd, args)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&partial, "partial", false, "keep artifacts left open at the end of a source")

	return cmd
}

func (a *app) extract(cmd *cobra.Command, names []string) (err error) {
	ctx, out := cmd.Context(), cmd.OutOrStdout()

	sources := make([]artifact.Source, 0, len(names))
	buffers := make([]*bytes.Buffer, 0, len(names))
	for _, name := range names {
		var src *source
		if src, err = a.open(ctx, cmd, name); err != nil {
			return
		}
		defer src.Close()

		buffer := new(bytes.Buffer)
		sources = append(sources, artifact.Source{Name: name, Reader: io.TeeReader(src, buffer)})
		buffers = append(buffers, buffer)
	}

	results, pErr := artifact.ParseAll(ctx, sources, a.cfg.Artifact(a.logger))

	var errs []error
	for index, resl := range results {
		for _, art := range resl.Artifacts {
			if wErr := a.writeArtifact(ctx, out, art); wErr != nil {
				errs = append(errs, fmt.Errorf("%s: %w", resl.Name, wErr))
			}
		}

		doc := buffers[index].String()
		if payload, ok := artifact.ExtractTryCatchError(doc); ok {
			fmt.Fprintf(out, "%s: %s: %s\n", resl.Name, artifact.TryCatchErrorTag, payload)
		}
		if payload, ok := artifact.ExtractNewComponentID(doc); ok {
			fmt.Fprintf(out, "%s: %s: %s\n", resl.Name, artifact.NewComponentIDTag, payload)
		}
	}

	return errors.Join(pErr, errors.Join(errs...))
}

// writeArtifact writes the artifact's files under its component directory.
func (a *app) writeArtifact(ctx context.Context, out io.Writer, art *artifact.Artifact) (err error) {
	root, err := art.Tree()
	if err != nil {
		return
	}

	files, err := root.Files(ctx)
	if err != nil {
		return
	}

	base := filepath.Join(a.cfg.Output.Dir, componentDir(art.ComponentName))
	for _, file := range files {
		node, lErr := root.Locate(file.Name)
		if lErr != nil {
			return lErr
		}

		target := filepath.Join(base, filepath.FromSlash(node.Path()))
		if err = os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
			return
		}
		if err = os.WriteFile(target, []byte(file.Content), filePerm); err != nil {
			return
		}

		a.logger.WithField("component", art.ComponentName).Debugf("wrote %d byte(s) to %s", len(file.Content), target)
		fmt.Fprintln(out, target)
	}

	return
}

// componentDir derives a single path segment from a component name.
func componentDir(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if name == "" || name == "." || name == ".." {
		return defComponentDir
	}

	return name
}
