// Package consensus is for calling a corrected sequence from a
// multi-overlap: a pileup of the bases aligned to every root position
package consensus

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/bwt"
	"github.com/jjtimmons/olap/internal/overlap"
)

// Engine calls a corrected root sequence from a multi-overlap, given the
// expected per-base error rate of the reads
type Engine interface {
	Consensus(mo *overlap.MultiOverlap, errorRate float64) (string, error)
}

// Pileup is the bases seen at a single position of the root read
type Pileup []byte

// Add a base to the pileup
func (p *Pileup) Add(b byte) {
	*p = append(*p, b)
}

// Depth is the number of bases in the pileup
func (p Pileup) Depth() int {
	return len(p)
}

// AlphaCount is the number of times each base appears in the pileup
func (p Pileup) AlphaCount() (ac bwt.AlphaCount) {
	for _, b := range p {
		ac.Add(b, 1)
	}
	return
}

// SimpleConsensus is the most common base, all bases weighted equally
func (p Pileup) SimpleConsensus() byte {
	ac := p.AlphaCount()
	return ac.MaxBase()
}

func (p Pileup) String() string {
	return string(p)
}

// Simple is a majority-vote Engine. The root base at a position is replaced
// by the pileup's majority when it's outnumbered and seen no more often than
// the reads' error rate predicts (at least once)
type Simple struct{}

// Consensus returns the corrected root sequence
func (Simple) Consensus(mo *overlap.MultiOverlap, errorRate float64) (string, error) {
	if mo == nil {
		return "", errors.New("no multi-overlap to call a consensus from")
	}
	if errorRate < 0 || errorRate >= 1 {
		return "", errors.Errorf("error rate %v outside of [0, 1)", errorRate)
	}

	out := []byte(mo.RootSeq)
	for pos := range out {
		p := Pileup(mo.Column(pos))
		if p.Depth() < 2 {
			continue
		}

		ac := p.AlphaCount()
		root := out[pos]
		best := ac.MaxBase()
		if best == root || ac.Get(best) <= ac.Get(root) {
			continue
		}

		expected := int64(math.Ceil(errorRate * float64(p.Depth())))
		if expected < 1 {
			expected = 1
		}
		if ac.Get(root) <= expected {
			out[pos] = best
		}
	}
	return string(out), nil
}
