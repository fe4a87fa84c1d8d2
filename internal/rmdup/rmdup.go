// Package rmdup removes reads that are duplicated in the collection: reads
// that are a substring of another read or identical to one
package rmdup

import (
	"context"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

// Decision is what happens to a query read
type Decision int

const (
	// Keep the read
	Keep Decision = iota

	// RemoveSubstring drops a read that is a substring of another
	RemoveSubstring

	// RemoveIdentical drops a read contained by, or identical to, another
	RemoveIdentical
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case RemoveSubstring:
		return "substring"
	case RemoveIdentical:
		return "identical"
	default:
		return "unknown"
	}
}

// Counts of each decision over a run
type Counts struct {
	Substring int64
	Identical int64
	Kept      int64
}

// Add one decision
func (c *Counts) Add(d Decision) {
	switch d {
	case RemoveSubstring:
		c.Substring++
	case RemoveIdentical:
		c.Identical++
	default:
		c.Kept++
	}
}

// Remover decides whether each query read is a duplicate
type Remover struct {
	Reads *reads.Table
	Ranks reads.RankResolver

	// Verify checks every resolved block list
	Verify bool
}

// New creates a remover over table, whose reads are ranked in index order
func New(table *reads.Table) *Remover {
	return &Remover{Reads: table, Ranks: table}
}

// Decide what to do with the query of item.
//
// A substring read is removed outright. Otherwise the query is removed if a
// block matching the whole query covers another read that contains it. Of
// a set of identical reads the one with the lowest index is kept
func (r *Remover) Decide(ctx context.Context, item pipeline.WorkItem) (Decision, error) {
	if item.Hits.Substring {
		return RemoveSubstring, nil
	}

	blocks, err := item.Hits.OverlapBlocks()
	if err != nil {
		return Keep, err
	}
	resolve := block.Resolve
	if r.Verify {
		resolve = block.ResolveVerified
	}
	resolved, err := resolve(blocks)
	if err != nil {
		return Keep, err
	}

	query := item.Read
	_, containments := block.Partition(resolved, len(query.Seq))
	for _, b := range containments {
		for rank := b.Ranges.Primary.Lower; rank <= b.Ranges.Primary.Upper; rank++ {
			if err := ctx.Err(); err != nil {
				return Keep, err
			}

			idx, err := r.Ranks.Resolve(rank)
			if err != nil {
				return Keep, err
			}
			if idx == item.Hits.Index {
				continue
			}
			target, err := r.Reads.Read(idx)
			if err != nil {
				return Keep, err
			}

			o, err := b.ToOverlap(query.ID, target.ID, len(query.Seq), len(target.Seq))
			if err != nil {
				return Keep, err
			}
			if !o.IsContainment() {
				continue
			}
			if o.Coord[0].IsContained() && o.Coord[1].IsContained() {
				if idx < item.Hits.Index {
					return RemoveIdentical, nil
				}
				continue
			}
			if o.ContainedIdx() == 0 {
				return RemoveIdentical, nil
			}
		}
	}
	return Keep, nil
}

// Run decides every item and writes the kept reads to w as FASTA. A query
// that fails is kept
func Run(ctx context.Context, cfg pipeline.Config, items <-chan pipeline.WorkItem, r *Remover, w io.Writer) (Counts, pipeline.Stats, error) {
	var counts Counts
	sink := func(res pipeline.Result[Decision]) error {
		d := res.Value
		if res.Err != nil {
			d = Keep
		}
		counts.Add(d)
		if d != Keep {
			log.Debug.Printf("removing %s read %s", d, res.Item.Read.ID)
			return nil
		}
		return reads.Write(w, []reads.Record{res.Item.Read})
	}

	stats, err := pipeline.Run(ctx, cfg, items, r.Decide, sink)
	if err != nil {
		return counts, stats, errors.Wrap(err, "failed to remove duplicates")
	}

	log.Printf("removed %s substring reads", humanize.Comma(counts.Substring))
	log.Printf("removed %s identical reads", humanize.Comma(counts.Identical))
	log.Printf("kept %s reads", humanize.Comma(counts.Kept))
	return counts, stats, nil
}
