package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/henderiw/idxrange/pkg/input"
	"github.com/henderiw/idxrange/pkg/query"
	"github.com/henderiw/idxrange/pkg/rangeset"
	"github.com/pkg/errors"
)

func run(ctx context.Context, path string, cfg config, log logr.Logger, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	in, err := input.ParseFile(path)
	if err != nil {
		return err
	}
	log.V(1).Info("parsed input", "ranges", len(in.Ranges), "queries", len(in.Queries), "elapsed", time.Since(start))

	t := time.Now()
	b := rangeset.NewRangeSetBuilder(len(in.Ranges))
	for _, r := range in.Ranges {
		b.AddRange(r)
	}
	set, err := b.RangeSet()
	if err != nil {
		return errors.Wrap(err, "cannot consolidate ranges")
	}
	log.V(1).Info("consolidated ranges", "raw", b.Len(), "consolidated", set.Len(), "elapsed", time.Since(t))

	if log.V(2).Enabled() {
		for _, r := range set.Ranges() {
			log.V(2).Info("range", "range", r.String(), "len", r.Len().String())
		}
	}
	if cfg.DumpRanges {
		for _, r := range set.Ranges() {
			fmt.Fprintln(w, r)
		}
	}

	t = time.Now()
	fresh, err := query.Count(ctx, set.Index(), in.Queries,
		query.WithWorkers(cfg.Workers),
		query.WithChunkSize(cfg.ChunkSize),
		query.WithLogger(log),
	)
	if err != nil {
		return errors.Wrap(err, "cannot evaluate queries")
	}
	log.V(1).Info("counted contained queries", "count", fresh, "elapsed", time.Since(t))

	t = time.Now()
	coverage := set.Coverage()
	log.V(1).Info("computed coverage", "coverage", coverage.String(), "elapsed", time.Since(t))

	fmt.Fprintln(w, fresh)
	fmt.Fprintln(w, coverage.String())

	log.V(1).Info("done", "elapsed", time.Since(start))
	return nil
}
