// Package query evaluates batches of membership queries against a
// ContainmentIndex on a bounded number of goroutines. The index is
// read-only, so workers share it without locking.
package query

import (
	"context"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/henderiw/idxrange/pkg/rangeset"
	"golang.org/x/sync/errgroup"
)

const defaultChunkSize = 4096

type Option func(*options)

type options struct {
	workers   int
	chunkSize int
	log       logr.Logger
}

// WithWorkers bounds the number of concurrent goroutines. Values below 1
// select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithChunkSize sets how many query values one goroutine handles at a time.
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) *options {
	o := &options{log: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.chunkSize < 1 {
		o.chunkSize = defaultChunkSize
	}
	return o
}

// Evaluate reports for every value whether idx contains it. The result
// has the order of ids.
func Evaluate(ctx context.Context, idx *rangeset.ContainmentIndex, ids []uint64, opts ...Option) ([]bool, error) {
	o := newOptions(opts)
	out := make([]bool, len(ids))

	err := forEachChunk(ctx, o, len(ids), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = idx.Contains(ids[i])
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns how many of ids are contained in idx. Duplicated values
// are counted every time they occur.
func Count(ctx context.Context, idx *rangeset.ContainmentIndex, ids []uint64, opts ...Option) (uint64, error) {
	o := newOptions(opts)
	counts := make([]uint64, chunks(len(ids), o.chunkSize))

	err := forEachChunk(ctx, o, len(ids), func(lo, hi int) {
		var n uint64
		for _, id := range ids[lo:hi] {
			if idx.Contains(id) {
				n++
			}
		}
		counts[lo/o.chunkSize] = n
	})
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func chunks(n, size int) int {
	return (n + size - 1) / size
}

func forEachChunk(parent context.Context, o *options, n int, fn func(lo, hi int)) error {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(o.workers)

	o.log.V(1).Info("evaluating queries", "queries", n, "workers", o.workers, "chunkSize", o.chunkSize)
	for lo := 0; lo < n; lo += o.chunkSize {
		lo, hi := lo, min(lo+o.chunkSize, n)
		// Stop handing out chunks once the context is done; Go blocks
		// while all workers are busy.
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// the parent may have been cancelled before any chunk started
	return parent.Err()
}
