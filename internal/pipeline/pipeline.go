// Package pipeline runs per-query work over a pool of goroutines. Each
// query is independent: workers share only immutable inputs and a single
// collector serializes every write to the output
package pipeline

import (
	"context"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/bwt"
	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/overlap"
	"github.com/jjtimmons/olap/internal/reads"
)

// Config controls the worker pool
type Config struct {
	Threads  int   // number of worker goroutines (>=1)
	Strict   bool  // abort the run on the first failed query
	Progress bool  // show a progress bar on stderr
	Total    int64 // expected number of queries, for the progress bar
}

// WorkItem is one query and the blocks found for it
type WorkItem struct {
	Read reads.Record
	Hits hits.Record
}

// Result is the outcome of processing one query. Err is set, and Value is
// the zero value, when the query failed
type Result[R any] struct {
	Item  WorkItem
	Value R
	Err   error
}

// Stats are the counts of a run
type Stats struct {
	Processed int64
	Failed    int64
}

// IsQueryError returns whether err is fatal to a single query only: the
// blocks or coordinates of the query are inconsistent
func IsQueryError(err error) bool {
	return errors.Is(err, block.ErrInconsistentBlockState) ||
		errors.Is(err, overlap.ErrInvalidCoordinate) ||
		errors.Is(err, bwt.ErrInvalidInterval) ||
		errors.Is(err, bwt.ErrSizeMismatch) ||
		errors.Is(err, reads.ErrUnknownRank)
}

// Run processes items with cfg.Threads workers and passes every result to
// sink, in the order the items arrived. sink is never called concurrently.
//
// A query failing with a query error is logged, counted in Stats.Failed and
// still passed to sink (with Err set) unless cfg.Strict. Any other error,
// from process or from sink, stops the run and is returned.
func Run[R any](
	ctx context.Context,
	cfg Config,
	items <-chan WorkItem,
	process func(context.Context, WorkItem) (R, error),
	sink func(Result[R]) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		seq  int
		item WorkItem
	}
	type done struct {
		seq int
		res Result[R]
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan done, cfg.Threads*2)

	var (
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					v, err := process(ctx, j.item)
					select {
					case results <- done{j.seq, Result[R]{Item: j.item, Value: v, Err: err}}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector, emitting results in input order
	var (
		stats Stats
		cwg   sync.WaitGroup
	)
	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.Full.Start64(cfg.Total)
	}
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Result[R])
		next := 0
		stopped := false
		for d := range results {
			if stopped {
				continue
			}
			pending[d.seq] = d.res
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				stats.Processed++
				if bar != nil {
					bar.Increment()
				}
				if res.Err != nil {
					if !IsQueryError(res.Err) || cfg.Strict {
						fail(errors.Wrapf(res.Err, "failed on query %s", res.Item.Read.ID))
						stopped = true
						break
					}
					stats.Failed++
					log.Error.Printf("skipping query %s: %v", res.Item.Read.ID, res.Err)
				}
				if err := sink(res); err != nil {
					fail(err)
					stopped = true
					break
				}
			}
		}
	}()

	// Feed work
	seq := 0
feed:
	for {
		select {
		case <-ctx.Done():
			break feed
		case item, ok := <-items:
			if !ok {
				break feed
			}
			select {
			case <-ctx.Done():
				break feed
			case jobs <- job{seq: seq, item: item}:
				seq++
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()
	if bar != nil {
		bar.Finish()
	}

	if firstErr != nil {
		return stats, firstErr
	}
	return stats, ctx.Err()
}
