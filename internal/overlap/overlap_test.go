package overlap

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestSeqCoord_Flip(t *testing.T) {
	tests := []struct {
		name string
		c    SeqCoord
		want SeqCoord
	}{
		{"suffix to prefix", SeqCoord{Start: 70, End: 99, SeqLen: 100}, SeqCoord{Start: 0, End: 29, SeqLen: 100}},
		{"prefix to suffix", SeqCoord{Start: 0, End: 29, SeqLen: 100}, SeqCoord{Start: 70, End: 99, SeqLen: 100}},
		{"full length", SeqCoord{Start: 0, End: 49, SeqLen: 50}, SeqCoord{Start: 0, End: 49, SeqLen: 50}},
		{"inner", SeqCoord{Start: 10, End: 19, SeqLen: 50}, SeqCoord{Start: 30, End: 39, SeqLen: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Flip()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SeqCoord.Flip() = %v, want %v", got, tt.want)
			}
			if back := got.Flip(); !reflect.DeepEqual(back, tt.c) {
				t.Errorf("SeqCoord.Flip().Flip() = %v, want %v", back, tt.c)
			}
		})
	}
}

func TestNewSeqCoord(t *testing.T) {
	tests := []struct {
		name               string
		start, end, seqLen int
		wantErr            bool
	}{
		{"valid", 0, 9, 10, false},
		{"single base", 3, 3, 10, false},
		{"negative start", -1, 3, 10, true},
		{"start after end", 5, 4, 10, true},
		{"end past sequence", 0, 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeqCoord(tt.start, tt.end, tt.seqLen)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSeqCoord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCoordinate) {
				t.Errorf("NewSeqCoord() error = %v, want ErrInvalidCoordinate", err)
			}
		})
	}
}

func TestOverlap_ContainedIdx(t *testing.T) {
	tests := []struct {
		name string
		o    Overlap
		want int
	}{
		{
			"first read contained",
			Overlap{ID: [2]string{"a", "b"}, Coord: [2]SeqCoord{{0, 49, 50}, {10, 59, 100}}},
			0,
		},
		{
			"second read contained",
			Overlap{ID: [2]string{"a", "b"}, Coord: [2]SeqCoord{{10, 59, 100}, {0, 49, 50}}},
			1,
		},
		{
			"identical reads, larger id is contained",
			Overlap{ID: [2]string{"b", "a"}, Coord: [2]SeqCoord{{0, 49, 50}, {0, 49, 50}}},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.o.IsContainment() {
				t.Fatalf("Overlap.IsContainment() = false for %v", tt.o)
			}
			if got := tt.o.ContainedIdx(); got != tt.want {
				t.Errorf("Overlap.ContainedIdx() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlap_String(t *testing.T) {
	o, err := New("q", SeqCoord{Start: 70, End: 99, SeqLen: 100}, "7", SeqCoord{Start: 0, End: 29, SeqLen: 80}, false, -1)
	if err != nil {
		t.Fatal(err)
	}
	want := "q 7 70 99 100 0 29 80 0 -1"
	if got := o.String(); got != want {
		t.Errorf("Overlap.String() = %q, want %q", got, want)
	}
}

func TestMultiOverlap_Column(t *testing.T) {
	root := "ACGTACGTAC"
	m := NewMultiOverlap("q", root)

	// suffix of the root [6,9] against a prefix of the other sequence
	fwd, _ := New("q", SeqCoord{Start: 6, End: 9, SeqLen: 10}, "1", SeqCoord{Start: 0, End: 3, SeqLen: 4}, false, -1)
	m.Add("GTTC", fwd)

	// same range reported as a reverse complement alignment
	rc, _ := New("q", SeqCoord{Start: 6, End: 9, SeqLen: 10}, "2", SeqCoord{Start: 0, End: 3, SeqLen: 4}, true, -1)
	m.Add("GTAC", rc)

	tests := []struct {
		name string
		pos  int
		want []byte
	}{
		{"uncovered position", 2, []byte("G")},
		{"first covered base", 6, []byte("GGG")},
		{"mismatch in the forward member", 8, []byte("ATA")},
		{"last base", 9, []byte("CCC")},
		{"out of range", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Column(tt.pos); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MultiOverlap.Column() = %q, want %q", got, tt.want)
			}
		})
	}
}
