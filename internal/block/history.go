package block

import (
	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/bwt"
	"github.com/jjtimmons/olap/internal/overlap"
)

// HistoryItem is one base consumed by the backward search
type HistoryItem struct {
	// Base the search extended with
	Base byte

	// Edit is whether Base differs from the query (a mismatch)
	Edit bool
}

// SearchHistory is the bases of a backward search in the order they were
// consumed. Step k is at query position len-1-k when the search ran from the
// 3' end and at position k when the query was reversed
type SearchHistory []HistoryItem

// Normalize returns a copy of the history with its bases in the query's
// original orientation: complemented back if the query was complemented
func (h SearchHistory) Normalize(queryComp bool) SearchHistory {
	if h == nil {
		return nil
	}

	out := make(SearchHistory, len(h))
	for i, item := range h {
		if queryComp {
			item.Base = bwt.Complement(item.Base)
		}
		out[i] = item
	}
	return out
}

// Transform reconstructs the sequence the search actually matched: the
// original query with every edit in the history applied. The history must
// already be normalized
func (h SearchHistory) Transform(original string, queryRev bool) (string, error) {
	out := []byte(original)
	for k, item := range h {
		if !item.Edit {
			continue
		}

		pos := len(original) - 1 - k
		if queryRev {
			pos = k
		}
		if pos < 0 || pos >= len(out) {
			return "", errors.Wrapf(overlap.ErrInvalidCoordinate,
				"search history step %d is outside of a %dbp query", k, len(original))
		}
		out[pos] = item.Base
	}
	return string(out), nil
}

// Edits is the number of differences recorded in the history
func (h SearchHistory) Edits() (n int) {
	for _, item := range h {
		if item.Edit {
			n++
		}
	}
	return
}

// BaseString is the consumed bases, in search order
func (h SearchHistory) BaseString() string {
	out := make([]byte, len(h))
	for i, item := range h {
		out[i] = item.Base
	}
	return string(out)
}
