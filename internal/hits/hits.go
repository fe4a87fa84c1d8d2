// Package hits is the interchange format between the external FM-index
// search and the overlap core: a JSON-lines file with one record of
// overlap blocks per query read
package hits

import (
	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/bwt"
)

// Record is every overlap block found for one query read
type Record struct {
	// Index of the query in the read table
	Index int `json:"idx"`

	// Substring is set when the query is a substring of some other read.
	// Such queries have no blocks
	Substring bool `json:"substring"`

	// Blocks found by the search
	Blocks []Block `json:"blocks"`
}

// Block is the serialized form of an overlap block
type Block struct {
	// Fwd is the [lower, upper] range of target ranks in the forward index
	Fwd [2]int64 `json:"fwd"`

	// Rev is the co-ranked range in the reverse index
	Rev [2]int64 `json:"rev"`

	// Len is the overlap length
	Len int `json:"len"`

	// Diff is the number of edits
	Diff int `json:"diff"`

	// QueryRev, TargetRev and QueryComp are the search's orientation flags
	QueryRev  bool `json:"qr"`
	TargetRev bool `json:"tr"`
	QueryComp bool `json:"qc"`

	// History is the raw search history, as the search consumed it
	History []Step `json:"hist,omitempty"`

	// Elim marks a block the search eliminated. It's dropped before resolution
	Elim bool `json:"elim,omitempty"`
}

// Step is one base of a search history
type Step struct {
	Base string `json:"b"`
	Edit bool   `json:"e"`
}

// OverlapBlocks converts the record's blocks through the checked constructors
func (r Record) OverlapBlocks() ([]block.OverlapBlock, error) {
	out := make([]block.OverlapBlock, 0, len(r.Blocks))
	for i, b := range r.Blocks {
		ob, err := b.OverlapBlock()
		if err != nil {
			return nil, errors.Wrapf(err, "block %d of query %d", i, r.Index)
		}
		out = append(out, ob)
	}
	return out, nil
}

// OverlapBlock converts a serialized block
func (b Block) OverlapBlock() (block.OverlapBlock, error) {
	pair, err := bwt.NewIntervalPair(
		bwt.Interval{Lower: b.Fwd[0], Upper: b.Fwd[1]},
		bwt.Interval{Lower: b.Rev[0], Upper: b.Rev[1]},
	)
	if err != nil {
		return block.OverlapBlock{}, err
	}

	history := make(block.SearchHistory, 0, len(b.History))
	for _, s := range b.History {
		if len(s.Base) != 1 {
			return block.OverlapBlock{}, errors.Wrapf(block.ErrInconsistentBlockState, "history base %q is not a single base", s.Base)
		}
		history = append(history, block.HistoryItem{Base: s.Base[0], Edit: s.Edit})
	}

	flags := block.NewAlignFlags(b.QueryRev, b.TargetRev, b.QueryComp)
	ob, err := block.NewOverlapBlock(pair, b.Len, b.Diff, flags, history)
	if err != nil {
		return block.OverlapBlock{}, err
	}
	ob.Eliminated = b.Elim
	return ob, nil
}

// FromBlocks serializes blocks found for the query at index
func FromBlocks(index int, blocks []block.OverlapBlock) Record {
	r := Record{Index: index, Blocks: make([]Block, 0, len(blocks))}
	for _, ob := range blocks {
		r.Blocks = append(r.Blocks, FromBlock(ob))
	}
	return r
}

// FromBlock serializes a block. Its history is written in the orientation
// the search consumed it, undoing the normalization of NewOverlapBlock
func FromBlock(ob block.OverlapBlock) Block {
	b := Block{
		Fwd:       [2]int64{ob.Ranges.Primary.Lower, ob.Ranges.Primary.Upper},
		Rev:       [2]int64{ob.Ranges.Mirror.Lower, ob.Ranges.Mirror.Upper},
		Len:       ob.OverlapLen,
		Diff:      ob.NumDiff,
		QueryRev:  ob.Flags.IsQueryRev(),
		TargetRev: ob.Flags.IsTargetRev(),
		QueryComp: ob.Flags.IsQueryComp(),
		Elim:      ob.Eliminated,
	}
	for _, item := range ob.History.Normalize(ob.Flags.IsQueryComp()) {
		b.History = append(b.History, Step{Base: string(item.Base), Edit: item.Edit})
	}
	return b
}
