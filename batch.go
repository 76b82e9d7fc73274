// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type (
	// Source is a named document.
	Source struct {
		Reader io.Reader
		Name   string
	}

	// Result holds the outcome of parsing a Source.
	Result struct {
		Err       error
		Name      string
		Artifacts []*Artifact
	}
)

// Batch parsing errors.
var (
	ErrPool = errors.New("worker pool failure")
)

// ParseAll parses independent documents concurrently, each with its own lexer & Builder.
//
// Results follow the order of the sources; the returned error joins the failed Results' errors.
func ParseAll(ctx context.Context, sources []Source, cfg *Config) (results []Result, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPool, err)
		return
	}
	defer pool.Release()

	results = make([]Result, len(sources))
	wg := new(sync.WaitGroup)

	for index := range sources {
		index, src := index, sources[index]
		results[index].Name = src.Name

		wg.Add(1)
		if sErr := pool.Submit(func() {
			defer wg.Done()

			results[index].Artifacts, results[index].Err = Parse(ctx, src.Reader, cfg)
		}); sErr != nil {
			wg.Done()
			results[index].Err = fmt.Errorf("%w: %v", ErrPool, sErr)
		}
	}
	wg.Wait()

	var errs []error
	for index := range results {
		if results[index].Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", results[index].Name, results[index].Err))
		}
	}
	err = errors.Join(errs...)

	return
}
