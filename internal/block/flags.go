// Package block is for overlap blocks: one backward-search match covering a
// range of target reads. Blocks found for one query are resolved into a
// disjoint, maximal set, partitioned into containments and proper overlaps,
// and expanded into explicit pairwise overlaps
package block

import (
	"fmt"
)

// Orientation is the strand combination a search ran under
type Orientation uint8

const (
	// SuffixForward is the query's suffix matched against the forward index
	SuffixForward Orientation = iota

	// SuffixReverse is the (complemented) query's suffix against the reverse index
	SuffixReverse

	// PrefixForward is the reversed (complemented) query matched against the forward index
	PrefixForward

	// PrefixReverse is the reversed query matched against the reverse index
	PrefixReverse
)

// orientationOf maps the query and target reversal facets to an Orientation
func orientationOf(queryRev, targetRev bool) Orientation {
	switch {
	case !queryRev && !targetRev:
		return SuffixForward
	case !queryRev && targetRev:
		return SuffixReverse
	case queryRev && !targetRev:
		return PrefixForward
	default:
		return PrefixReverse
	}
}

func (o Orientation) String() string {
	switch o {
	case SuffixForward:
		return "suffix-forward"
	case SuffixReverse:
		return "suffix-reverse"
	case PrefixForward:
		return "prefix-forward"
	case PrefixReverse:
		return "prefix-reverse"
	}
	return fmt.Sprintf("orientation(%d)", uint8(o))
}

// AlignFlags describe how the query and target strands were transformed
// relative to the reads as they were input. They are set once when a block
// is created and never change
type AlignFlags struct {
	orient    Orientation
	queryComp bool
}

// NewAlignFlags creates flags from the three independent facets of a search
func NewAlignFlags(queryRev, targetRev, queryComp bool) AlignFlags {
	return AlignFlags{orient: orientationOf(queryRev, targetRev), queryComp: queryComp}
}

// Orientation is the strand combination of the search
func (f AlignFlags) Orientation() Orientation {
	return f.orient
}

// IsQueryRev is whether the search proceeded from the 5' end of the query
func (f AlignFlags) IsQueryRev() bool {
	switch f.orient {
	case SuffixForward, SuffixReverse:
		return false
	case PrefixForward, PrefixReverse:
		return true
	}
	panic(fmt.Sprintf("unknown %s", f.orient))
}

// IsTargetRev is whether the match was found in the reverse index
func (f AlignFlags) IsTargetRev() bool {
	switch f.orient {
	case SuffixForward, PrefixForward:
		return false
	case SuffixReverse, PrefixReverse:
		return true
	}
	panic(fmt.Sprintf("unknown %s", f.orient))
}

// IsQueryComp is whether the query was complemented before the search
func (f AlignFlags) IsQueryComp() bool {
	return f.queryComp
}

// IsReverseComplement is whether the two reads are on opposite strands:
// exactly one of the query and the target was reversed
func (f AlignFlags) IsReverseComplement() bool {
	switch f.orient {
	case SuffixForward, PrefixReverse:
		return false
	case SuffixReverse, PrefixForward:
		return true
	}
	panic(fmt.Sprintf("unknown %s", f.orient))
}

func (f AlignFlags) String() string {
	return fmt.Sprintf("qr:%d tr:%d qc:%d", b2i(f.IsQueryRev()), b2i(f.IsTargetRev()), b2i(f.queryComp))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
