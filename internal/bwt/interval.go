// Package bwt is for the rank intervals produced by backward search over
// a pair of FM-indexes (forward and reverse) and the alphabet counts
// used to extend them
package bwt

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInterval is returned when a range is empty or leaves its parent
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrSizeMismatch is returned when the two intervals of a pair differ in size
	ErrSizeMismatch = errors.New("interval pair size mismatch")
)

// Interval is a contiguous, inclusive range of suffix ranks in one index
type Interval struct {
	Lower int64 `json:"lower"`
	Upper int64 `json:"upper"`
}

// IsValid returns whether the interval holds at least one rank
func (i Interval) IsValid() bool {
	return i.Lower <= i.Upper
}

// Size is the number of ranks in the interval, 0 if it's empty
func (i Interval) Size() int64 {
	if !i.IsValid() {
		return 0
	}
	return i.Upper - i.Lower + 1 // it's inclusive
}

// Intersects returns whether the two intervals share at least one rank
func (i Interval) Intersects(o Interval) bool {
	if !i.IsValid() || !o.IsValid() {
		return false
	}
	return i.Lower <= o.Upper && o.Lower <= i.Upper
}

// Contains returns whether rank falls in the interval
func (i Interval) Contains(rank int64) bool {
	return i.Lower <= rank && rank <= i.Upper
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d]", i.Lower, i.Upper)
}

// IntervalPair is a pair of co-ranked intervals. Primary drives sorting and
// range semantics; Mirror is its companion in the other index and moves in
// lockstep with it. Both always have the same size.
type IntervalPair struct {
	Primary Interval `json:"primary"`
	Mirror  Interval `json:"mirror"`
}

// NewIntervalPair checks the co-ranking invariant before returning a pair
func NewIntervalPair(primary, mirror Interval) (IntervalPair, error) {
	p := IntervalPair{Primary: primary, Mirror: mirror}
	if err := p.Validate(); err != nil {
		return IntervalPair{}, err
	}
	return p, nil
}

// Validate checks that both intervals are the same size and are either
// both valid or both empty
func (p IntervalPair) Validate() error {
	if p.Primary.IsValid() != p.Mirror.IsValid() {
		return errors.Wrapf(ErrInvalidInterval, "primary %s and mirror %s disagree on validity", p.Primary, p.Mirror)
	}
	if p.Primary.Size() != p.Mirror.Size() {
		return errors.Wrapf(ErrSizeMismatch, "primary %s has size %d, mirror %s has size %d",
			p.Primary, p.Primary.Size(), p.Mirror, p.Mirror.Size())
	}
	return nil
}

// IsValid returns whether the pair covers at least one rank
func (p IntervalPair) IsValid() bool {
	return p.Primary.IsValid() && p.Mirror.IsValid()
}

// Size of the pair (both intervals share it)
func (p IntervalPair) Size() int64 {
	return p.Primary.Size()
}

// Index returns the interval at i: 0 for the primary, 1 for the mirror
func (p IntervalPair) Index(i int) Interval {
	if i == 0 {
		return p.Primary
	}
	return p.Mirror
}

// Sub returns the size-long sub-pair starting offset ranks into p.
//
// The same offset and size are applied to both intervals. The ordering of
// reads is identical in the two intervals so this keeps the mapping between
// them: contracting the primary from [0,2] to [0,1] contracts a mirror of
// [37,39] to [37,38].
func (p IntervalPair) Sub(offset, size int64) (IntervalPair, error) {
	if offset < 0 || size <= 0 || offset+size > p.Size() {
		return IntervalPair{}, errors.Wrapf(ErrInvalidInterval,
			"sub-range (offset %d, size %d) outside of %s/%s", offset, size, p.Primary, p.Mirror)
	}

	sub := IntervalPair{
		Primary: Interval{
			Lower: p.Primary.Lower + offset,
			Upper: p.Primary.Lower + offset + size - 1,
		},
		Mirror: Interval{
			Lower: p.Mirror.Lower + offset,
			Upper: p.Mirror.Lower + offset + size - 1,
		},
	}
	if err := sub.Validate(); err != nil {
		return IntervalPair{}, err
	}
	return sub, nil
}

// ExtendCompatible returns whether p and o could be contiguous ranges of the
// same search path: both valid, touching or overlapping in the primary index,
// and shifted by the same number of ranks in both indexes
func (p IntervalPair) ExtendCompatible(o IntervalPair) bool {
	if !p.IsValid() || !o.IsValid() {
		return false
	}
	if p.Primary.Lower > o.Primary.Upper+1 || o.Primary.Lower > p.Primary.Upper+1 {
		return false
	}
	return o.Primary.Lower-p.Primary.Lower == o.Mirror.Lower-p.Mirror.Lower
}

func (p IntervalPair) String() string {
	return fmt.Sprintf("%s %s", p.Primary, p.Mirror)
}
