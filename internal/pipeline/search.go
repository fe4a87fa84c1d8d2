package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/reads"
)

// Search runs the overlap search for every read of table, in order, and
// streams the results as work items
func Search(ctx context.Context, s hits.Searcher, table *reads.Table, minOverlap int) (<-chan WorkItem, <-chan error) {
	items := make(chan WorkItem)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(items)

		for i, read := range table.Records() {
			rec, err := s.SearchOverlaps(ctx, i, minOverlap)
			if err != nil {
				errc <- errors.Wrapf(err, "failed to search overlaps of %s", read.ID)
				return
			}

			select {
			case items <- WorkItem{Read: read, Hits: rec}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- nil
	}()
	return items, errc
}
