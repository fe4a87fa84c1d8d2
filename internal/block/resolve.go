package block

import (
	"sort"
	"sync"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

var warnThreeWay sync.Once

// sortLeft sorts blocks by the lower bound of their primary range
func sortLeft(blocks []OverlapBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Ranges.Primary.Lower < blocks[j].Ranges.Primary.Lower
	})
}

// Resolve removes sub-maximal blocks from the blocks of a single query.
//
// The blocks are sorted by their left coordinate and scanned; when two
// adjacent blocks intersect they're split into maximal contiguous blocks
// with ResolveOverlap, the list is rebuilt with the split blocks in place of
// the pair, and the scan restarts from the head. This repeats until every
// block covers a unique range. The vast majority of queries have no
// intersecting blocks, so the restart is left as is.
//
// Eliminated blocks are dropped first and take no part in the resolution.
// The input is not modified. No result is returned with an error.
func Resolve(blocks []OverlapBlock) ([]OverlapBlock, error) {
	list := RemoveEliminated(blocks)
	sortLeft(list)

	for i := 0; i+1 < len(list); {
		a, b := list[i], list[i+1]
		if !a.Ranges.Primary.Intersects(b.Ranges.Primary) {
			i++
			continue
		}

		resolved, err := ResolveOverlap(a, b)
		if err != nil {
			return nil, err
		}

		next := make([]OverlapBlock, 0, len(list)-2+len(resolved))
		next = append(next, list[:i]...)
		next = append(next, list[i+2:]...)
		next = append(next, resolved...)
		sortLeft(next)

		list = next
		i = 0
	}

	return list, nil
}

// ResolveOverlap splits two intersecting blocks into up to three disjoint
// blocks, keeping the longest overlap for every rank.
//
// Blocks with the same overlap length must be identical (found from
// different seeds) and only one is kept, whether or not their ranges
// intersect. Disjoint blocks of different lengths are returned as is.
// Otherwise the block with the longer overlap is kept whole and the other
// is cut down to the parts outside it:
//
//	Lower  ------          -----------       ------
//	Higher    ------          ------         ------
//	Result ---             ---      --       (empty)
//
// The result is sorted by left coordinate.
func ResolveOverlap(a, b OverlapBlock) ([]OverlapBlock, error) {
	if a.OverlapLen == b.OverlapLen {
		if a.Ranges.Primary == b.Ranges.Primary {
			return []OverlapBlock{a}, nil
		}
		return nil, errors.Wrapf(ErrInconsistentBlockState,
			"blocks %s and %s have the same overlap length but different ranges", a, b)
	}

	if !a.Ranges.Primary.Intersects(b.Ranges.Primary) {
		out := []OverlapBlock{a, b}
		sortLeft(out)
		return out, nil
	}

	higher, lower := a, b
	if b.OverlapLen > a.OverlapLen {
		higher, lower = b, a
	}
	out := []OverlapBlock{higher}

	hp, lp := higher.Ranges.Primary, lower.Ranges.Primary

	// left of the higher block
	if lp.Lower < hp.Lower {
		size := hp.Lower - lp.Lower
		split, err := lower.split(0, size)
		if err != nil {
			return nil, err
		}
		out = append(out, split)
	}

	// right of the higher block
	if lp.Upper > hp.Upper {
		size := lp.Upper - hp.Upper
		split, err := lower.split(lower.Ranges.Size()-size, size)
		if err != nil {
			return nil, err
		}
		out = append(out, split)
	}

	if len(out) == 3 {
		warnThreeWay.Do(func() {
			log.Printf("warning: overlap block was split into 3 segments")
		})
		log.Debug.Printf("split %s around %s", lower, higher)
	}

	sortLeft(out)
	return out, nil
}

// split returns a copy of the block cut down to size ranks, offset ranks
// into its range
func (b OverlapBlock) split(offset, size int64) (OverlapBlock, error) {
	r, err := b.Ranges.Sub(offset, size)
	if err != nil {
		return OverlapBlock{}, errors.Wrapf(ErrInconsistentBlockState, "failed to split %s: %v", b, err)
	}
	b.Ranges = r
	return b, nil
}

// RemoveEliminated returns the blocks that have not been marked eliminated
func RemoveEliminated(blocks []OverlapBlock) []OverlapBlock {
	kept := make([]OverlapBlock, 0, len(blocks))
	for _, b := range blocks {
		if !b.Eliminated {
			kept = append(kept, b)
		}
	}
	return kept
}
