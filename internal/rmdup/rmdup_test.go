package rmdup

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

func testTable(t *testing.T) *reads.Table {
	t.Helper()
	table, err := reads.NewTable([]reads.Record{
		{ID: "r0", Seq: "ACGTACGT"},
		{ID: "r1", Seq: "ACGTACGTAA"},
		{ID: "r2", Seq: "ACGTACGT"},
		{ID: "r3", Seq: "GGGG"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

// at covers the ranks [lower, upper] with an overlap of ol bases
func at(lower, upper int64, ol int) hits.Block {
	return hits.Block{Fwd: [2]int64{lower, upper}, Rev: [2]int64{lower + 20, upper + 20}, Len: ol}
}

func TestRemover_Decide(t *testing.T) {
	table := testTable(t)
	r := New(table)

	tests := []struct {
		name    string
		query   int
		rec     hits.Record
		want    Decision
		wantErr error
	}{
		{
			"substring",
			3,
			hits.Record{Index: 3, Substring: true},
			RemoveSubstring,
			nil,
		},
		{
			"contained in a longer read",
			0,
			hits.Record{Index: 0, Blocks: []hits.Block{at(1, 1, 8)}},
			RemoveIdentical,
			nil,
		},
		{
			"identical to a later read",
			0,
			hits.Record{Index: 0, Blocks: []hits.Block{at(2, 2, 8)}},
			Keep,
			nil,
		},
		{
			"identical to an earlier read",
			2,
			hits.Record{Index: 2, Blocks: []hits.Block{at(0, 0, 8)}},
			RemoveIdentical,
			nil,
		},
		{
			"only matches itself",
			0,
			hits.Record{Index: 0, Blocks: []hits.Block{at(0, 0, 8)}},
			Keep,
			nil,
		},
		{
			"proper overlap",
			0,
			hits.Record{Index: 0, Blocks: []hits.Block{at(3, 3, 4)}},
			Keep,
			nil,
		},
		{
			"inconsistent blocks",
			0,
			hits.Record{Index: 0, Blocks: []hits.Block{at(0, 1, 8), at(1, 2, 8)}},
			Keep,
			block.ErrInconsistentBlockState,
		},
		{
			"rank outside the table",
			0,
			hits.Record{Index: 0, Blocks: []hits.Block{at(7, 7, 8)}},
			Keep,
			reads.ErrUnknownRank,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, err := table.Read(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			got, err := r.Decide(context.Background(), pipeline.WorkItem{Read: read, Hits: tt.rec})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decide() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Decide() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	table := testTable(t)
	records := []hits.Record{
		{Index: 0, Blocks: []hits.Block{at(1, 1, 8)}},
		{Index: 1, Blocks: []hits.Block{at(1, 1, 10)}},
		{Index: 2, Blocks: []hits.Block{at(0, 0, 8)}},
		{Index: 3, Substring: true},
	}

	items := make(chan pipeline.WorkItem, len(records))
	for _, rec := range records {
		read, _ := table.Read(rec.Index)
		items <- pipeline.WorkItem{Read: read, Hits: rec}
	}
	close(items)

	var buf bytes.Buffer
	counts, _, err := Run(context.Background(), pipeline.Config{Threads: 2}, items, New(table), &buf)
	if err != nil {
		t.Fatal(err)
	}

	wantCounts := Counts{Substring: 1, Identical: 2, Kept: 1}
	if counts != wantCounts {
		t.Errorf("Run() counts = %+v, want %+v", counts, wantCounts)
	}

	kept, err := reads.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []reads.Record{{ID: "r1", Seq: "ACGTACGTAA"}}
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("Run() kept %v, want %v", kept, want)
	}
}
