// Package reads is the read table indexed by the overlap search. Read i of
// the table has rank i in the suffix-array order of the index, so target
// ranks of overlap blocks resolve back to read identities through it
package reads

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ErrUnknownRank is returned when a target rank has no read in the table
var ErrUnknownRank = errors.New("unknown read rank")

// Record is a single read
type Record struct {
	// ID is the FASTA header of the read, up to the first space
	ID string

	// Seq is the upper-cased sequence
	Seq string
}

// Table is an immutable, ordered list of reads
type Table struct {
	records []Record
	byID    map[string]int
}

// RankResolver maps a target rank from the index to a read index
type RankResolver interface {
	Resolve(rank int64) (int, error)
}

// IdentityRanks resolves rank i to read i of an N read collection
type IdentityRanks struct {
	N int
}

// Resolve rank to a read index
func (r IdentityRanks) Resolve(rank int64) (int, error) {
	if rank < 0 || rank >= int64(r.N) {
		return 0, errors.Wrapf(ErrUnknownRank, "rank %d of %d reads", rank, r.N)
	}
	return int(rank), nil
}

// NewTable creates a read table from records, keeping their order
func NewTable(records []Record) (*Table, error) {
	t := &Table{
		records: make([]Record, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range records {
		if r.ID == "" {
			return nil, errors.Errorf("read %d has no ID", i)
		}
		if _, ok := t.byID[r.ID]; ok {
			return nil, errors.Errorf("duplicate read ID %q", r.ID)
		}
		t.byID[r.ID] = i
		t.records[i] = r
	}
	return t, nil
}

// Load reads a FASTA file, gzipped if it ends in .gz, to a table
func Load(path string) (*Table, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create path to reads")
		}
		path = abs
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open reads")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decompress %s", path)
		}
		defer gz.Close()
		r = gz
	}

	records, err := Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	if len(records) < 1 {
		return nil, errors.Errorf("failed to parse read(s) from %s", path)
	}
	return NewTable(records)
}

// Parse all FASTA records from r
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	reader := fasta.NewReader(r)
	for {
		s, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := s.Name
		if i := strings.IndexAny(id, " \t"); i >= 0 {
			id = id[:i]
		}
		records = append(records, Record{
			ID:  id,
			Seq: strings.ToUpper(string(s.Bytes())),
		})
	}
	return records, nil
}

// Len is the number of reads in the table
func (t *Table) Len() int {
	return len(t.records)
}

// Read returns the i'th read
func (t *Table) Read(i int) (Record, error) {
	if i < 0 || i >= len(t.records) {
		return Record{}, errors.Wrapf(ErrUnknownRank, "read %d of %d", i, len(t.records))
	}
	return t.records[i], nil
}

// Index of the read with id
func (t *Table) Index(id string) (int, bool) {
	i, ok := t.byID[id]
	return i, ok
}

// Records is a copy of all reads in rank order
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Resolve makes the table its own rank resolver
func (t *Table) Resolve(rank int64) (int, error) {
	return IdentityRanks{N: len(t.records)}.Resolve(rank)
}

// Write records to w as FASTA
func Write(w io.Writer, records []Record) error {
	writer := fasta.NewWriter(w)
	for _, r := range records {
		if err := writer.Write(seq.NewSequenceString(r.ID, r.Seq)); err != nil {
			return errors.Wrapf(err, "failed to write read %s", r.ID)
		}
	}
	return writer.Flush()
}
