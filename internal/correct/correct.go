// Package correct fixes sequencing errors in reads by calling a consensus
// over every read overlapping each one
package correct

import (
	"context"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/consensus"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

// Result is a corrected read and the number of bases that changed
type Result struct {
	Read    reads.Record
	Changed int
}

// Corrector corrects single reads
type Corrector struct {
	Engine    consensus.Engine
	ErrorRate float64

	// Verify checks every resolved block list
	Verify bool
}

// New creates a corrector using the simple majority consensus
func New(errorRate float64) *Corrector {
	return &Corrector{Engine: consensus.Simple{}, ErrorRate: errorRate}
}

// Correct the query of item: its blocks are resolved and expanded into a
// multi-overlap, and the consensus of that is the corrected read
func (c *Corrector) Correct(ctx context.Context, item pipeline.WorkItem) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	blocks, err := item.Hits.OverlapBlocks()
	if err != nil {
		return Result{}, err
	}
	resolve := block.Resolve
	if c.Verify {
		resolve = block.ResolveVerified
	}
	resolved, err := resolve(blocks)
	if err != nil {
		return Result{}, err
	}

	query := item.Read
	mo, err := block.Materialize(query.ID, query.Seq, resolved, block.DecimalRank)
	if err != nil {
		return Result{}, err
	}

	seq, err := c.Engine.Consensus(mo, c.ErrorRate)
	if err != nil {
		return Result{}, errors.Wrapf(err, "failed to correct %s", query.ID)
	}

	changed := 0
	for i := range seq {
		if i >= len(query.Seq) || seq[i] != query.Seq[i] {
			changed++
		}
	}
	return Result{Read: reads.Record{ID: query.ID, Seq: seq}, Changed: changed}, nil
}

// Counts over a correction run
type Counts struct {
	Reads     int64
	Corrected int64
	Bases     int64
	Failed    int64
}

// Run corrects every item and writes the reads to w as FASTA. Queries that
// fail are written uncorrected
func Run(ctx context.Context, cfg pipeline.Config, items <-chan pipeline.WorkItem, c *Corrector, w io.Writer) (Counts, error) {
	var counts Counts
	sink := func(res pipeline.Result[Result]) error {
		counts.Reads++
		out := res.Value.Read
		if res.Err != nil {
			counts.Failed++
			out = res.Item.Read
		} else if res.Value.Changed > 0 {
			counts.Corrected++
			counts.Bases += int64(res.Value.Changed)
		}
		return reads.Write(w, []reads.Record{out})
	}

	if _, err := pipeline.Run(ctx, cfg, items, c.Correct, sink); err != nil {
		return counts, errors.Wrap(err, "failed to correct reads")
	}

	log.Printf("corrected %s bases in %s of %s reads",
		humanize.Comma(counts.Bases), humanize.Comma(counts.Corrected), humanize.Comma(counts.Reads))
	if counts.Failed > 0 {
		log.Printf("wrote %s reads uncorrected", humanize.Comma(counts.Failed))
	}
	return counts, nil
}
