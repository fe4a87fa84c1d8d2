package overlap

import (
	"fmt"
	"strings"

	"github.com/jjtimmons/olap/internal/bwt"
)

// Member is one overlap of a MultiOverlap and the sequence it aligns
type Member struct {
	Seq     string
	Overlap Overlap
}

// MultiOverlap is the set of overlaps anchored on a single root read
type MultiOverlap struct {
	RootID  string
	RootSeq string
	members []Member
}

// NewMultiOverlap creates an empty multi-overlap for the root read
func NewMultiOverlap(rootID, rootSeq string) *MultiOverlap {
	return &MultiOverlap{RootID: rootID, RootSeq: rootSeq}
}

// Add an overlap and the sequence of the other read (matched substring)
func (m *MultiOverlap) Add(seq string, o Overlap) {
	m.members = append(m.members, Member{Seq: seq, Overlap: o})
}

// Len is the number of overlaps
func (m *MultiOverlap) Len() int {
	return len(m.members)
}

// Members returns the overlaps in the order they were added
func (m *MultiOverlap) Members() []Member {
	return m.members
}

// Column returns the bases aligned to position pos of the root read,
// the root's own base first
func (m *MultiOverlap) Column(pos int) []byte {
	if pos < 0 || pos >= len(m.RootSeq) {
		return nil
	}

	col := []byte{m.RootSeq[pos]}
	for _, mem := range m.members {
		a, b := mem.Overlap.Coord[0], mem.Overlap.Coord[1]
		if pos < a.Start || pos > a.End {
			continue
		}

		var base byte
		if mem.Overlap.IsRC {
			idx := b.End - (pos - a.Start)
			if idx < 0 || idx >= len(mem.Seq) {
				continue
			}
			base = bwt.Complement(mem.Seq[idx])
		} else {
			idx := b.Start + (pos - a.Start)
			if idx < 0 || idx >= len(mem.Seq) {
				continue
			}
			base = mem.Seq[idx]
		}
		col = append(col, base)
	}
	return col
}

func (m *MultiOverlap) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", m.RootID, m.RootSeq)
	for _, mem := range m.members {
		fmt.Fprintf(&sb, "\t%s %s\n", mem.Overlap, mem.Seq)
	}
	return sb.String()
}
