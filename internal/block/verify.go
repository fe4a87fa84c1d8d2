package block

import (
	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/pkg/errors"
)

// Coverage is the set of target ranks covered by the blocks' primary ranges
func Coverage(blocks []OverlapBlock) *roaring64.Bitmap {
	bm := roaring64.New()
	for _, b := range blocks {
		p := b.Ranges.Primary
		if !p.IsValid() || p.Lower < 0 {
			continue
		}
		bm.AddRange(uint64(p.Lower), uint64(p.Upper)+1) // end is exclusive
	}
	return bm
}

// Verify checks the output of Resolve against its input: every output block
// keeps its intervals co-ranked, no two output blocks share a rank, the
// covered ranks are unchanged, and each rank is kept at the longest overlap
// any input block had for it. Eliminated input blocks are not counted
func Verify(in, out []OverlapBlock) error {
	in = RemoveEliminated(in)
	for _, b := range out {
		if err := b.Ranges.Validate(); err != nil {
			return errors.Wrapf(ErrInconsistentBlockState, "resolved block %s: %v", b, err)
		}
	}

	sorted := make([]OverlapBlock, len(out))
	copy(sorted, out)
	sortLeft(sorted)
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].Ranges.Primary.Intersects(sorted[i+1].Ranges.Primary) {
			return errors.Wrapf(ErrInconsistentBlockState, "resolved blocks %s and %s intersect", sorted[i], sorted[i+1])
		}
	}

	inCov, outCov := Coverage(in), Coverage(out)
	if !inCov.Equals(outCov) {
		return errors.Wrapf(ErrInconsistentBlockState,
			"resolved blocks cover %d ranks, input covered %d", outCov.GetCardinality(), inCov.GetCardinality())
	}

	for _, o := range out {
		for _, b := range in {
			if b.Ranges.Primary.Intersects(o.Ranges.Primary) && b.OverlapLen > o.OverlapLen {
				return errors.Wrapf(ErrInconsistentBlockState,
					"resolved block %s is shorter than input block %s", o, b)
			}
		}
	}
	return nil
}

// ResolveVerified resolves blocks and checks the result with Verify
func ResolveVerified(blocks []OverlapBlock) ([]OverlapBlock, error) {
	out, err := Resolve(blocks)
	if err != nil {
		return nil, err
	}
	if err := Verify(blocks, out); err != nil {
		return nil, err
	}
	return out, nil
}
