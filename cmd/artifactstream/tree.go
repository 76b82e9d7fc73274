// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/artifact"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the file tree of each artifact in a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, out := cmd.Context(), cmd.OutOrStdout()

			src, err := a.open(ctx, cmd, args[0])
			if err != nil {
				return
			}
			defer src.Close()

			artifacts, err := artifact.Parse(ctx, src, a.cfg.Artifact(a.logger))
			if err != nil {
				return
			}

			for _, art := range artifacts {
				var root *artifact.Tree
				if root, err = art.Tree(); err != nil {
					return
				}

				var listing string
				if listing, err = root.Serialize(ctx); err != nil {
					return
				}
				fmt.Fprint(out, listing)

				if entry, ok := art.Entry(); ok {
					fmt.Fprintf(out, "entry: %s\n", entry.Name)
				}
			}

			return
		},
	}
}
