package overlap

import (
	"fmt"
)

// Overlap is one concrete alignment between two named reads
type Overlap struct {
	// ID of the two reads, the query first
	ID [2]string `json:"id"`

	// Coord of the aligned range on each read
	Coord [2]SeqCoord `json:"coord"`

	// IsRC is whether the second read aligns as its reverse complement
	IsRC bool `json:"rc"`

	// NumDiff is the number of differences, -1 when it is unknown
	NumDiff int `json:"numDiff"`
}

// New creates an Overlap after validating both coordinates
func New(idA string, a SeqCoord, idB string, b SeqCoord, isRC bool, numDiff int) (Overlap, error) {
	if err := a.Validate(); err != nil {
		return Overlap{}, err
	}
	if err := b.Validate(); err != nil {
		return Overlap{}, err
	}
	return Overlap{
		ID:      [2]string{idA, idB},
		Coord:   [2]SeqCoord{a, b},
		IsRC:    isRC,
		NumDiff: numDiff,
	}, nil
}

// IsContainment returns whether either read is aligned over its full length
func (o Overlap) IsContainment() bool {
	return o.Coord[0].IsContained() || o.Coord[1].IsContained()
}

// ContainedIdx is the index (0 or 1) of the read that is contained by the
// other. When both reads are aligned end-to-end they are identical and
// the read with the larger ID is reported as the contained one
func (o Overlap) ContainedIdx() int {
	c0, c1 := o.Coord[0].IsContained(), o.Coord[1].IsContained()
	switch {
	case c0 && !c1:
		return 0
	case c1 && !c0:
		return 1
	case o.ID[0] > o.ID[1]:
		return 0
	default:
		return 1
	}
}

// Length of the overlap on read i
func (o Overlap) Length(i int) int {
	return o.Coord[i].Length()
}

// String is the edge line: ids, both coordinates, orientation and differences
func (o Overlap) String() string {
	rc := 0
	if o.IsRC {
		rc = 1
	}
	return fmt.Sprintf("%s %s %d %d %d %d %d %d %d %d",
		o.ID[0], o.ID[1],
		o.Coord[0].Start, o.Coord[0].End, o.Coord[0].SeqLen,
		o.Coord[1].Start, o.Coord[1].End, o.Coord[1].SeqLen,
		rc, o.NumDiff,
	)
}
