package hits

import (
	"context"

	"github.com/pkg/errors"
)

// Searcher is the FM-index overlap search: every block of target reads
// overlapping the query read by at least minOverlap bases
type Searcher interface {
	SearchOverlaps(ctx context.Context, query, minOverlap int) (Record, error)
}

// Replay answers searches from the records of a previous run
type Replay struct {
	byQuery map[int]Record
}

// NewReplay indexes records by query. A query may only appear once
func NewReplay(records []Record) (*Replay, error) {
	r := &Replay{byQuery: make(map[int]Record, len(records))}
	for _, rec := range records {
		if _, ok := r.byQuery[rec.Index]; ok {
			return nil, errors.Errorf("query %d has multiple hits records", rec.Index)
		}
		r.byQuery[rec.Index] = rec
	}
	return r, nil
}

// SearchOverlaps returns the recorded blocks of query at least minOverlap
// long. A query without a record has no overlaps
func (r *Replay) SearchOverlaps(ctx context.Context, query, minOverlap int) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	rec, ok := r.byQuery[query]
	if !ok {
		return Record{Index: query}, nil
	}

	out := Record{Index: rec.Index, Substring: rec.Substring}
	for _, b := range rec.Blocks {
		if b.Len >= minOverlap {
			out.Blocks = append(out.Blocks, b)
		}
	}
	return out, nil
}
