package hits

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// maxLine is the longest record line accepted. Highly repetitive reads
// can have thousands of blocks
const maxLine = 64 << 20

// Reader reads hits records, one per line
type Reader struct {
	scanner *bufio.Scanner
	line    int
	closers []io.Closer
}

// NewReader creates a reader over r
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Reader{scanner: scanner}
}

// Open a hits file, decompressing it if it ends in .gz
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open hits")
	}

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		r := NewReader(f)
		r.closers = []io.Closer{f}
		return r, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "failed to decompress %s", path)
	}
	r := NewReader(gz)
	r.closers = []io.Closer{gz, f}
	return r, nil
}

// Read the next record. Blank lines are skipped; io.EOF is returned after
// the last record
func (r *Reader) Read() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return Record{}, errors.Wrapf(err, "failed to parse hits line %d", r.line)
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, errors.Wrapf(err, "failed to read hits after line %d", r.line)
	}
	return Record{}, io.EOF
}

// ReadAll remaining records
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// Close the underlying file, if the reader opened one
func (r *Reader) Close() (err error) {
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

// Writer writes hits records, one per line
type Writer struct {
	buf     *bufio.Writer
	enc     *json.Encoder
	closers []io.Closer
}

// NewWriter creates a writer to w. Flush must be called when done
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{buf: buf, enc: json.NewEncoder(buf)}
}

// Create a hits file, compressing it if it ends in .gz
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hits")
	}

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		w := NewWriter(f)
		w.closers = []io.Closer{f}
		return w, nil
	}

	gz := gzip.NewWriter(f)
	w := NewWriter(gz)
	w.closers = []io.Closer{gz, f}
	return w, nil
}

// Write a record as a single line
func (w *Writer) Write(rec Record) error {
	if rec.Blocks == nil {
		rec.Blocks = []Block{}
	}
	if err := w.enc.Encode(rec); err != nil {
		return errors.Wrapf(err, "failed to write hits of query %d", rec.Index)
	}
	return nil
}

// Flush buffered records
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Close flushes the writer and closes the file it created, if any
func (w *Writer) Close() error {
	err := w.Flush()
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
