package block

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/overlap"
)

// Partition splits resolved blocks into proper overlaps and containments:
// blocks matching the query end-to-end (OverlapLen == queryLen). The order
// within each list is kept
func Partition(blocks []OverlapBlock, queryLen int) (overlaps, containments []OverlapBlock) {
	for _, b := range blocks {
		if b.OverlapLen == queryLen {
			containments = append(containments, b)
		} else {
			overlaps = append(overlaps, b)
		}
	}
	return
}

// RankRenderer turns a target rank into the read ID used in overlaps
type RankRenderer func(rank int64) string

// DecimalRank renders a rank as its decimal string. Downstream consumers
// resolve these back to read identities
func DecimalRank(rank int64) string {
	return strconv.FormatInt(rank, 10)
}

// Materialize expands blocks into explicit overlaps between the query and
// every target rank they cover, accumulated in a multi-overlap.
//
// Blocks matching the whole query are skipped; containments are reported
// through Partition. The matched substring is already in the query's
// orientation so no overlap is marked as a reverse complement, and the
// number of differences is unknown (-1) at this stage.
func Materialize(queryID, querySeq string, blocks []OverlapBlock, render RankRenderer) (*overlap.MultiOverlap, error) {
	if render == nil {
		render = DecimalRank
	}

	out := overlap.NewMultiOverlap(queryID, querySeq)
	for _, b := range blocks {
		overlapSeq, err := b.OverlapString(querySeq)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to materialize %s", b)
		}

		q, t := b.coords(len(querySeq), len(overlapSeq))
		if q.IsContained() {
			continue
		}
		if err := q.Validate(); err != nil {
			return nil, errors.Wrapf(err, "query coordinate of %s", b)
		}
		if err := t.Validate(); err != nil {
			return nil, errors.Wrapf(err, "target coordinate of %s", b)
		}

		for i := b.Ranges.Primary.Lower; i <= b.Ranges.Primary.Upper; i++ {
			out.Add(overlapSeq, overlap.Overlap{
				ID:      [2]string{queryID, render(i)},
				Coord:   [2]overlap.SeqCoord{q, t},
				IsRC:    false,
				NumDiff: -1,
			})
		}
	}
	return out, nil
}
