package pipeline

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/block"
	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/reads"
)

func testTable(t *testing.T, n int) *reads.Table {
	t.Helper()
	var records []reads.Record
	for i := 0; i < n; i++ {
		records = append(records, reads.Record{ID: string(rune('a' + i)), Seq: "ACGT"})
	}
	table, err := reads.NewTable(records)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func itemsOf(table *reads.Table) <-chan WorkItem {
	items := make(chan WorkItem, table.Len())
	for i, r := range table.Records() {
		items <- WorkItem{Read: r, Hits: hits.Record{Index: i}}
	}
	close(items)
	return items
}

func TestRun(t *testing.T) {
	table := testTable(t, 20)

	tests := []struct {
		name       string
		cfg        Config
		failOn     map[int]error
		wantIDs    string
		wantFailed int64
		wantErr    bool
	}{
		{
			"in order",
			Config{Threads: 4},
			nil,
			"abcdefghijklmnopqrst",
			0,
			false,
		},
		{
			"single thread default",
			Config{},
			nil,
			"abcdefghijklmnopqrst",
			0,
			false,
		},
		{
			"query errors are skipped",
			Config{Threads: 3},
			map[int]error{2: block.ErrInconsistentBlockState, 5: errors.Wrap(block.ErrInconsistentBlockState, "split")},
			"abdeghijklmnopqrst",
			2,
			false,
		},
		{
			"strict stops on query error",
			Config{Threads: 3, Strict: true},
			map[int]error{2: block.ErrInconsistentBlockState},
			"ab",
			0,
			true,
		},
		{
			"other errors stop the run",
			Config{Threads: 2},
			map[int]error{3: errors.New("disk full")},
			"abc",
			0,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			process := func(_ context.Context, item WorkItem) (string, error) {
				// finish out of order
				time.Sleep(time.Duration(20-item.Hits.Index) * 100 * time.Microsecond)
				if err, ok := tt.failOn[item.Hits.Index]; ok {
					return "", err
				}
				return item.Read.ID, nil
			}

			var got strings.Builder
			sink := func(r Result[string]) error {
				got.WriteString(r.Value)
				return nil
			}

			stats, err := Run(context.Background(), tt.cfg, itemsOf(table), process, sink)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.String() != tt.wantIDs {
				t.Errorf("Run() sink saw %q, want %q", got.String(), tt.wantIDs)
			}
			if stats.Failed != tt.wantFailed {
				t.Errorf("Run() Failed = %d, want %d", stats.Failed, tt.wantFailed)
			}
		})
	}
}

func TestRun_failedReachSink(t *testing.T) {
	table := testTable(t, 3)
	process := func(_ context.Context, item WorkItem) (int, error) {
		if item.Hits.Index == 1 {
			return 0, block.ErrInconsistentBlockState
		}
		return item.Hits.Index, nil
	}

	var failed []string
	sink := func(r Result[int]) error {
		if r.Err != nil {
			failed = append(failed, r.Item.Read.ID)
		}
		return nil
	}

	stats, err := Run(context.Background(), Config{Threads: 2}, itemsOf(table), process, sink)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(failed, []string{"b"}) {
		t.Errorf("Run() failed queries = %v, want [b]", failed)
	}
	if stats.Processed != 3 || stats.Failed != 1 {
		t.Errorf("Run() stats = %+v, want 3 processed and 1 failed", stats)
	}
}

func TestRun_sinkError(t *testing.T) {
	table := testTable(t, 10)
	process := func(_ context.Context, item WorkItem) (int, error) { return item.Hits.Index, nil }

	calls := 0
	sink := func(r Result[int]) error {
		calls++
		if r.Value == 4 {
			return errors.New("broken pipe")
		}
		return nil
	}

	if _, err := Run(context.Background(), Config{Threads: 4}, itemsOf(table), process, sink); err == nil {
		t.Fatal("Run() should return the sink's error")
	}
	if calls != 5 {
		t.Errorf("Run() called sink %d times after its error, want 5", calls)
	}
}

func TestRun_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make(chan WorkItem)
	process := func(context.Context, WorkItem) (int, error) { return 0, nil }
	sink := func(Result[int]) error { return nil }

	if _, err := Run(ctx, Config{Threads: 2}, items, process, sink); err != context.Canceled {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}

func TestSearch(t *testing.T) {
	table := testTable(t, 3)
	replay, err := hits.NewReplay([]hits.Record{
		{Index: 1, Blocks: []hits.Block{{Len: 5}, {Len: 50}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	items, errc := Search(context.Background(), replay, table, 10)
	var got []int
	for item := range items {
		got = append(got, len(item.Hits.Blocks))
	}
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []int{0, 1, 0}) {
		t.Errorf("Search() block counts = %v, want [0 1 0]", got)
	}
}
