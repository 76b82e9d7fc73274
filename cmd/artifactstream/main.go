// SPDX-License-Identifier: MIT

// Command artifactstream extracts component artifacts from generated markup, streaming its sources
// through the incremental scanner.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
