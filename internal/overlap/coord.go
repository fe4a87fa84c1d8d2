// Package overlap is for explicit pairwise overlaps between two reads
// and the multi-overlap accumulated for a single query read
package overlap

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidCoordinate is returned when a coordinate leaves its sequence
var ErrInvalidCoordinate = errors.New("invalid sequence coordinate")

// SeqCoord is an inclusive [Start, End] range on a sequence of SeqLen bases
type SeqCoord struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	SeqLen int `json:"seqLen"`
}

// NewSeqCoord makes a coordinate and checks 0 <= start <= end < seqLen
func NewSeqCoord(start, end, seqLen int) (SeqCoord, error) {
	c := SeqCoord{Start: start, End: end, SeqLen: seqLen}
	if err := c.Validate(); err != nil {
		return SeqCoord{}, err
	}
	return c, nil
}

// Validate returns ErrInvalidCoordinate if the range leaves the sequence
func (c SeqCoord) Validate() error {
	if c.Start < 0 || c.Start > c.End || c.End >= c.SeqLen {
		return errors.Wrapf(ErrInvalidCoordinate, "%s", c)
	}
	return nil
}

// Length of the range
func (c SeqCoord) Length() int {
	return c.End - c.Start + 1 // it's inclusive
}

// IsContained returns whether the range covers the whole sequence
func (c SeqCoord) IsContained() bool {
	return c.Start == 0 && c.End == c.SeqLen-1
}

// Flip mirrors the range onto the opposite strand of the sequence
func (c SeqCoord) Flip() SeqCoord {
	return SeqCoord{
		Start:  c.SeqLen - 1 - c.End,
		End:    c.SeqLen - 1 - c.Start,
		SeqLen: c.SeqLen,
	}
}

func (c SeqCoord) String() string {
	return fmt.Sprintf("[%d,%d]/%d", c.Start, c.End, c.SeqLen)
}

// EdgeDir is the end of a read an overlap attaches to
type EdgeDir int

const (
	// Sense edges leave from the 3' end (suffix) of the read
	Sense EdgeDir = iota

	// Antisense edges leave from the 5' end (prefix) of the read
	Antisense
)

func (d EdgeDir) String() string {
	if d == Antisense {
		return "antisense"
	}
	return "sense"
}
