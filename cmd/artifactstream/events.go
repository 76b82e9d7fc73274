// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/artifact/lexer"
)

func newEventsCmd(a *app) *cobra.Command {
	var dump, chunks bool

	cmd := &cobra.Command{
		Use:   "events FILE",
		Short: "Print the scanner events of a source",
		Long: `Stream a source through the scanner, printing one event per line.

Chunk events are omitted unless requested; --dump prints each event's full structure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, out := cmd.Context(), cmd.OutOrStdout()

			src, err := a.open(ctx, cmd, args[0])
			if err != nil {
				return
			}
			defer src.Close()

			var errs int
			for item := range lexer.Lex(ctx, src, a.cfg.LexerOptions(a.logger)...) {
				switch item.ID {
				case lexer.ItemChunk:
					if !chunks {
						continue
					}
				case lexer.ItemError:
					errs++
				}

				if dump {
					spew.Fdump(out, item)
					continue
				}
				fmt.Fprintln(out, item)
			}

			if err = ctx.Err(); err != nil {
				return
			}
			if errs > 0 {
				err = fmt.Errorf("%d markup error(s) in %s", errs, src.name)
			}

			return
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump every event's structure")
	cmd.Flags().BoolVar(&chunks, "chunks", false, "include chunk events")

	return cmd
}
