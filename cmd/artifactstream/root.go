// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/artifact/internal/chunk"
	"gitlab.com/fisherprime/artifact/internal/config"
)

// stdinName designates the standard input as a source.
const stdinName = "-"

type (
	// app holds the state shared by the commands.
	app struct {
		cfg    *config.Config
		logger *logrus.Logger

		cfgFile   string
		chunkSize int
		delay     time.Duration
		verbose   bool
		strict    bool
	}

	// source is an opened input, chunked as configured.
	source struct {
		io.Reader
		closer io.Closer
		name   string
	}
)

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "artifactstream",
		Short: "Stream component artifacts out of generated markup",
		Long: `artifactstream scans generated responses for ComponentArtifact markup.

Sources are replayed in small, optionally delayed chunks, mimicking a network
stream, so every command exercises the incremental scanner.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file path")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.strict, "strict", false, "fail documents with markup errors")
	flags.IntVar(&a.chunkSize, "chunk-size", 0, "maximum bytes per streamed chunk")
	flags.DurationVar(&a.delay, "delay", 0, "pause between streamed chunks")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newEventsCmd(a),
		newTreeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads the configuration, applying explicitly set flags over it.
func (a *app) setup(cmd *cobra.Command) (err error) {
	if a.cfg, err = config.Load(a.cfgFile); err != nil {
		return
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") && a.verbose {
		a.cfg.Log.Level = logrus.DebugLevel.String()
	}
	if flags.Changed("strict") {
		a.cfg.Parser.Strict = a.strict
	}
	if flags.Changed("chunk-size") {
		a.cfg.Stream.ChunkSize = a.chunkSize
	}
	if flags.Changed("delay") {
		a.cfg.Stream.SetDelay(a.delay)
	}
	if err = a.cfg.Validate(); err != nil {
		return
	}

	if a.logger, err = a.cfg.NewLogger(); err != nil {
		return
	}
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.Debugf("configuration loaded from %q", a.cfgFile)

	return
}

// open obtains a chunked source; stdinName reads the command's input.
func (a *app) open(ctx context.Context, cmd *cobra.Command, name string) (src *source, err error) {
	src = &source{name: name}

	var r io.Reader
	if name == stdinName {
		r = cmd.InOrStdin()
	} else {
		var file *os.File
		if file, err = os.Open(name); err != nil {
			return nil, fmt.Errorf("failed to open source: %w", err)
		}
		r, src.closer = file, file
	}

	src.Reader = chunk.NewReader(r,
		chunk.WithSize(a.cfg.Stream.ChunkSize),
		chunk.WithDelay(a.cfg.Stream.DelayDuration()),
		chunk.WithContext(ctx),
	)

	return
}

// Close releases the underlying file, if any.
func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}
