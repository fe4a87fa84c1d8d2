// Package graph turns the overlap blocks of each read into the edges of a
// string graph and writes them out
package graph

import (
	"context"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/overlap"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

// Builder makes the edges of single queries
type Builder struct {
	Reads *reads.Table
	Ranks reads.RankResolver

	// ExcludeContainments leaves containment edges out
	ExcludeContainments bool

	// Verify checks every resolved block list
	Verify bool
}

// New creates a builder over table, whose reads are ranked in index order
func New(table *reads.Table, excludeContainments bool) *Builder {
	return &Builder{Reads: table, Ranks: table, ExcludeContainments: excludeContainments}
}

// Edges resolves the blocks of item's query and expands them into overlaps
// with each target read.
//
// Every overlap is found from both of its reads. A proper overlap is kept
// only from the read with the lower index and a containment only from the
// contained read, so each edge is returned once over all queries
func (g *Builder) Edges(ctx context.Context, item pipeline.WorkItem) ([]overlap.Overlap, error) {
	if item.Hits.Substring {
		return nil, nil
	}

	blocks, err := item.Hits.OverlapBlocks()
	if err != nil {
		return nil, err
	}
	resolve := block.Resolve
	if g.Verify {
		resolve = block.ResolveVerified
	}
	resolved, err := resolve(blocks)
	if err != nil {
		return nil, err
	}

	query := item.Read
	overlaps, containments := block.Partition(resolved, len(query.Seq))
	if !g.ExcludeContainments {
		overlaps = append(overlaps, containments...)
	}

	var edges []overlap.Overlap
	for _, b := range overlaps {
		for rank := b.Ranges.Primary.Lower; rank <= b.Ranges.Primary.Upper; rank++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			idx, err := g.Ranks.Resolve(rank)
			if err != nil {
				return nil, err
			}
			if idx == item.Hits.Index {
				continue
			}
			target, err := g.Reads.Read(idx)
			if err != nil {
				return nil, err
			}

			o, err := b.ToOverlap(query.ID, target.ID, len(query.Seq), len(target.Seq))
			if err != nil {
				return nil, err
			}
			if o.IsContainment() {
				if g.ExcludeContainments || o.ContainedIdx() != 0 {
					continue
				}
			} else if idx < item.Hits.Index {
				continue
			}
			edges = append(edges, o)
		}
	}
	return edges, nil
}
