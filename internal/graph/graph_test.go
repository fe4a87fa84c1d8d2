package graph

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/overlap"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

func testTable(t *testing.T) *reads.Table {
	t.Helper()
	table, err := reads.NewTable([]reads.Record{
		{ID: "r0", Seq: "ACGTACGTAA"},
		{ID: "r1", Seq: "GTAAGGCC"},
		{ID: "r2", Seq: "ACGT"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func at(lower, upper int64, ol int) hits.Block {
	return hits.Block{Fwd: [2]int64{lower, upper}, Rev: [2]int64{lower + 10, upper + 10}, Len: ol}
}

func edgeStrings(edges []overlap.Overlap) []string {
	var out []string
	for _, e := range edges {
		out = append(out, e.String())
	}
	return out
}

func TestBuilder_Edges(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name    string
		exclude bool
		query   int
		blocks  []hits.Block
		want    []string
	}{
		{
			"proper overlap from the lower read",
			false,
			0,
			[]hits.Block{at(1, 1, 4)},
			[]string{"r0 r1 6 9 10 0 3 8 0 0"},
		},
		{
			"proper overlap from the higher read",
			false,
			1,
			[]hits.Block{at(0, 0, 4)},
			nil,
		},
		{
			"self match",
			false,
			0,
			[]hits.Block{at(0, 0, 4)},
			nil,
		},
		{
			"containment",
			false,
			2,
			[]hits.Block{at(0, 0, 4)},
			[]string{"r2 r0 0 3 4 0 3 10 0 0"},
		},
		{
			"containment excluded",
			true,
			2,
			[]hits.Block{at(0, 0, 4)},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, _ := table.Read(tt.query)
			item := pipeline.WorkItem{Read: read, Hits: hits.Record{Index: tt.query, Blocks: tt.blocks}}

			got, err := New(table, tt.exclude).Edges(context.Background(), item)
			if err != nil {
				t.Fatal(err)
			}
			if gotStrings := edgeStrings(got); !reflect.DeepEqual(gotStrings, tt.want) {
				t.Errorf("Edges() = %v, want %v", gotStrings, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	table := testTable(t)
	replay, err := hits.NewReplay([]hits.Record{
		{Index: 0, Blocks: []hits.Block{at(1, 1, 4)}},
		{Index: 1, Blocks: []hits.Block{at(0, 0, 4)}},
		{Index: 2, Blocks: []hits.Block{at(0, 0, 4)}},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format    string
		wantLines []string
	}{
		{
			"asqg",
			[]string{
				"HT\tVN:i:1\tER:f:0.04\tOL:i:4\tIN:Z:reads.fa\tCN:i:1\tTE:i:0",
				"VT\tr0\tACGTACGTAA\tSS:i:0",
				"VT\tr1\tGTAAGGCC\tSS:i:0",
				"VT\tr2\tACGT\tSS:i:0",
				"ED\tr0 r1 6 9 10 0 3 8 0 0",
				"ED\tr2 r0 0 3 4 0 3 10 0 0",
			},
		},
		{
			"tsv",
			[]string{
				"id1\tid2\tstart1\tend1\tlen1\tstart2\tend2\tlen2\trc\tdiff",
				"r0\tr1\t6\t9\t10\t0\t3\t8\t0\t0",
				"r2\tr0\t0\t3\t4\t0\t3\t10\t0\t0",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, tt.format)
			if err != nil {
				t.Fatal(err)
			}

			items, errc := pipeline.Search(context.Background(), replay, table, 4)
			edges, err := Run(context.Background(), pipeline.Config{Threads: 2}, items, New(table, false),
				Header{ErrorRate: 0.04, MinOverlap: 4, Input: "reads.fa"}, w)
			if err != nil {
				t.Fatal(err)
			}
			if err := <-errc; err != nil {
				t.Fatal(err)
			}
			if edges != 2 {
				t.Errorf("Run() = %d edges, want 2", edges)
			}

			gotLines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if !reflect.DeepEqual(gotLines, tt.wantLines) {
				t.Errorf("Run() wrote\n%s\nwant\n%s", strings.Join(gotLines, "\n"), strings.Join(tt.wantLines, "\n"))
			}
		})
	}

	if _, err := NewWriter(&bytes.Buffer{}, "gfa"); err == nil {
		t.Error("NewWriter() with an unknown format should fail")
	}
}
