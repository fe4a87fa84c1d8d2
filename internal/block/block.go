package block

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/bwt"
	"github.com/jjtimmons/olap/internal/overlap"
)

// ErrInconsistentBlockState is returned when blocks for a query contradict
// one another or a split produces an invalid interval pair. It points at a
// bug in the index search or corrupt index data
var ErrInconsistentBlockState = errors.New("inconsistent overlap block state")

// OverlapBlock is a single match found by backward search. The last (or
// first, when the query was reversed) OverlapLen bases of the query match,
// within NumDiff edits, a prefix (or suffix) of every target read whose rank
// is in Ranges.Primary
type OverlapBlock struct {
	// Ranges of matched target ranks in the two indexes
	Ranges bwt.IntervalPair

	// OverlapLen is the length of the overlap
	OverlapLen int

	// NumDiff is the number of edits in the overlap
	NumDiff int

	// Flags is the orientation of the search that produced the block
	Flags AlignFlags

	// History of the backward search, normalized to the query's orientation
	History SearchHistory

	// Eliminated marks a block as removed by a cleanup pass
	Eliminated bool
}

// NewOverlapBlock creates a block after checking its ranges and lengths.
// The search history is copied and normalized once here
func NewOverlapBlock(r bwt.IntervalPair, overlapLen, numDiff int, flags AlignFlags, history SearchHistory) (OverlapBlock, error) {
	if err := r.Validate(); err != nil {
		return OverlapBlock{}, errors.Wrap(err, "failed to create overlap block")
	}
	if !r.IsValid() || r.Primary.Lower < 0 || r.Mirror.Lower < 0 {
		return OverlapBlock{}, errors.Wrapf(bwt.ErrInvalidInterval, "failed to create overlap block over %s", r)
	}
	if overlapLen <= 0 {
		return OverlapBlock{}, errors.Wrapf(ErrInconsistentBlockState, "failed to create overlap block: overlap length %d", overlapLen)
	}
	if numDiff < 0 {
		return OverlapBlock{}, errors.Wrapf(ErrInconsistentBlockState, "failed to create overlap block: %d differences", numDiff)
	}

	return OverlapBlock{
		Ranges:     r,
		OverlapLen: overlapLen,
		NumDiff:    numDiff,
		Flags:      flags,
		History:    history.Normalize(flags.IsQueryComp()),
	}, nil
}

// OverlapString is the matched portion of the query, in the query's original
// orientation. original must be the untransformed query sequence
func (b OverlapBlock) OverlapString(original string) (string, error) {
	transformed, err := b.History.Transform(original, b.Flags.IsQueryRev())
	if err != nil {
		return "", err
	}
	if b.OverlapLen > len(transformed) {
		return "", errors.Wrapf(overlap.ErrInvalidCoordinate,
			"overlap of %dbp is longer than the %dbp query", b.OverlapLen, len(transformed))
	}

	// a reversed query was searched from its front
	if b.Flags.IsQueryRev() {
		return transformed[:b.OverlapLen], nil
	}
	return transformed[len(transformed)-b.OverlapLen:], nil
}

// coords returns the overlap's range on the query and on the target.
// The end of a match against the query must be its last base, the start on
// the target its first: a suffix/prefix match. The ranges are always with
// respect to the reads as input, so they're flipped for reversed strands
func (b OverlapBlock) coords(queryLen, targetLen int) (query, target overlap.SeqCoord) {
	query = overlap.SeqCoord{Start: queryLen - b.OverlapLen, End: queryLen - 1, SeqLen: queryLen}
	target = overlap.SeqCoord{Start: 0, End: b.OverlapLen - 1, SeqLen: targetLen}

	switch b.Flags.Orientation() {
	case SuffixForward:
	case SuffixReverse:
		target = target.Flip()
	case PrefixForward:
		query = query.Flip()
	case PrefixReverse:
		query = query.Flip()
		target = target.Flip()
	default:
		panic(fmt.Sprintf("unknown %s", b.Flags.Orientation()))
	}
	return
}

// ToOverlap turns the block into an overlap between the query and one
// of the target reads it covers
func (b OverlapBlock) ToOverlap(queryID, targetID string, queryLen, targetLen int) (overlap.Overlap, error) {
	q, t := b.coords(queryLen, targetLen)
	o, err := overlap.New(queryID, q, targetID, t, b.Flags.IsReverseComplement(), b.NumDiff)
	if err != nil {
		return overlap.Overlap{}, errors.Wrapf(err, "block %s to overlap of %s and %s", b, queryID, targetID)
	}
	return o, nil
}

// EdgeDir is the end of the query the match attaches to
func (b OverlapBlock) EdgeDir() overlap.EdgeDir {
	if b.Flags.IsQueryRev() {
		return overlap.Antisense
	}
	return overlap.Sense
}

// CanonicalIntervalIndex is the interval of Ranges searched in the forward
// index: 0 unless the target was reversed
func (b OverlapBlock) CanonicalIntervalIndex() int {
	if b.Flags.IsTargetRev() {
		return 1
	}
	return 0
}

// ExtensionIndex returns the index to extend the block in: the opposite of
// the one the backward search ran over
func (b OverlapBlock) ExtensionIndex(fwd, rev bwt.Extender) bwt.Extender {
	if b.Flags.IsTargetRev() {
		return fwd
	}
	return rev
}

// CanonicalExtCount is the extension counts of the block's mirror interval in
// its extension index, complemented if the search ran on the query's
// complementary strand
func (b OverlapBlock) CanonicalExtCount(fwd, rev bwt.Extender) bwt.AlphaCount {
	out := b.ExtensionIndex(fwd, rev).ExtCount(b.Ranges.Mirror)
	if b.Flags.IsQueryComp() {
		out.Complement()
	}
	return out
}

// TargetRanks is the range of target read ranks the block covers
func (b OverlapBlock) TargetRanks() bwt.Interval {
	return b.Ranges.Primary
}

func (b OverlapBlock) String() string {
	return fmt.Sprintf("{%s ol:%d nd:%d %s}", b.Ranges, b.OverlapLen, b.NumDiff, b.Flags)
}
