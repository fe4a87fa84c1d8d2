package block

import (
	"reflect"
	"testing"

	"github.com/jjtimmons/olap/internal/overlap"
)

func TestPartition(t *testing.T) {
	contained := mk(0, 3, 50)
	proper := mk(6, 9, 30)
	other := mk(12, 12, 49)

	gotOverlaps, gotContainments := Partition([]OverlapBlock{contained, proper, other}, 50)

	if want := []OverlapBlock{proper, other}; !reflect.DeepEqual(gotOverlaps, want) {
		t.Errorf("Partition() overlaps = %v, want %v", gotOverlaps, want)
	}
	if want := []OverlapBlock{contained}; !reflect.DeepEqual(gotContainments, want) {
		t.Errorf("Partition() containments = %v, want %v", gotContainments, want)
	}
}

func TestMaterialize(t *testing.T) {
	query := "ACGTACGTAA"

	suffix, err := NewOverlapBlock(pair(3, 4), 4, 1, NewAlignFlags(false, false, false), SearchHistory{{'C', true}})
	if err != nil {
		t.Fatal(err)
	}
	prefix, err := NewOverlapBlock(pair(7, 7), 4, 0, NewAlignFlags(true, true, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	contained, err := NewOverlapBlock(pair(0, 2), len(query), 0, NewAlignFlags(false, false, false), nil)
	if err != nil {
		t.Fatal(err)
	}

	mo, err := Materialize("q", query, []OverlapBlock{suffix, contained, prefix}, nil)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	suffixQ := overlap.SeqCoord{Start: 6, End: 9, SeqLen: 10}
	prefixQ := overlap.SeqCoord{Start: 0, End: 3, SeqLen: 10}
	target := overlap.SeqCoord{Start: 0, End: 3, SeqLen: 4}
	want := []overlap.Member{
		{Seq: "GTAC", Overlap: overlap.Overlap{ID: [2]string{"q", "3"}, Coord: [2]overlap.SeqCoord{suffixQ, target}, NumDiff: -1}},
		{Seq: "GTAC", Overlap: overlap.Overlap{ID: [2]string{"q", "4"}, Coord: [2]overlap.SeqCoord{suffixQ, target}, NumDiff: -1}},
		{Seq: "ACGT", Overlap: overlap.Overlap{ID: [2]string{"q", "7"}, Coord: [2]overlap.SeqCoord{prefixQ, target}, NumDiff: -1}},
	}
	if got := mo.Members(); !reflect.DeepEqual(got, want) {
		t.Errorf("Materialize() = %v, want %v", got, want)
	}
	if mo.RootID != "q" || mo.RootSeq != query {
		t.Errorf("Materialize() root = %s %s", mo.RootID, mo.RootSeq)
	}
}

func TestMaterialize_ContainmentSkip(t *testing.T) {
	query := "ACGTACGTAA"
	b, err := NewOverlapBlock(pair(0, 100), len(query), 0, NewAlignFlags(true, false, true), nil)
	if err != nil {
		t.Fatal(err)
	}

	mo, err := Materialize("q", query, []OverlapBlock{b}, DecimalRank)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if mo.Len() != 0 {
		t.Errorf("Materialize() of a full-length block = %v, want no overlaps", mo.Members())
	}
}

func TestMaterialize_Renderer(t *testing.T) {
	b := mk(40, 41, 3)
	mo, err := Materialize("q", "AAAAAA", []OverlapBlock{b}, func(rank int64) string {
		return "read-" + DecimalRank(rank-40)
	})
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, m := range mo.Members() {
		ids = append(ids, m.Overlap.ID[1])
	}
	if want := []string{"read-0", "read-1"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Materialize() target ids = %v, want %v", ids, want)
	}
}

func TestMaterialize_Error(t *testing.T) {
	if mo, err := Materialize("q", "ACG", []OverlapBlock{mk(0, 0, 5)}, nil); err == nil {
		t.Errorf("Materialize() = %v, want an error for an overlap longer than the query", mo)
	}
}
