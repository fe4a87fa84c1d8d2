package graph

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/jjtimmons/olap/internal/overlap"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

// Header is the run metadata written at the top of an ASQG file
type Header struct {
	ErrorRate  float64
	MinOverlap int
	Input      string
}

// Writer writes a graph's vertices and edges
type Writer interface {
	Header(h Header) error
	Vertex(r reads.Record) error
	Edge(o overlap.Overlap) error
	Flush() error
}

// NewWriter returns the writer for format: asqg or tsv
func NewWriter(w io.Writer, format string) (Writer, error) {
	switch format {
	case "asqg":
		return &asqgWriter{w: bufio.NewWriter(w)}, nil
	case "tsv":
		return &tsvWriter{w: bufio.NewWriter(w)}, nil
	default:
		return nil, errors.Errorf("unknown graph format %q", format)
	}
}

// asqgWriter writes the ASQG format: a header line, a VT line per read and
// an ED line per overlap
type asqgWriter struct {
	w *bufio.Writer
}

func (a *asqgWriter) Header(h Header) error {
	_, err := fmt.Fprintf(a.w, "HT\tVN:i:1\tER:f:%g\tOL:i:%d\tIN:Z:%s\tCN:i:1\tTE:i:0\n", h.ErrorRate, h.MinOverlap, h.Input)
	return err
}

func (a *asqgWriter) Vertex(r reads.Record) error {
	_, err := fmt.Fprintf(a.w, "VT\t%s\t%s\tSS:i:0\n", r.ID, r.Seq)
	return err
}

func (a *asqgWriter) Edge(o overlap.Overlap) error {
	_, err := fmt.Fprintf(a.w, "ED\t%s\n", o)
	return err
}

func (a *asqgWriter) Flush() error {
	return a.w.Flush()
}

// tsvWriter writes only the edges, one tab-separated row each
type tsvWriter struct {
	w *bufio.Writer
}

func (t *tsvWriter) Header(Header) error {
	_, err := fmt.Fprintln(t.w, "id1\tid2\tstart1\tend1\tlen1\tstart2\tend2\tlen2\trc\tdiff")
	return err
}

func (t *tsvWriter) Vertex(reads.Record) error {
	return nil
}

func (t *tsvWriter) Edge(o overlap.Overlap) error {
	rc := 0
	if o.IsRC {
		rc = 1
	}
	_, err := fmt.Fprintf(t.w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
		o.ID[0], o.ID[1],
		o.Coord[0].Start, o.Coord[0].End, o.Coord[0].SeqLen,
		o.Coord[1].Start, o.Coord[1].End, o.Coord[1].SeqLen,
		rc, o.NumDiff)
	return err
}

func (t *tsvWriter) Flush() error {
	return t.w.Flush()
}

// Run writes the header and every read of table as a vertex, then the
// edges of every item
func Run(ctx context.Context, cfg pipeline.Config, items <-chan pipeline.WorkItem, g *Builder, h Header, w Writer) (int64, error) {
	if err := w.Header(h); err != nil {
		return 0, errors.Wrap(err, "failed to write graph header")
	}
	for _, r := range g.Reads.Records() {
		if err := w.Vertex(r); err != nil {
			return 0, errors.Wrapf(err, "failed to write vertex %s", r.ID)
		}
	}

	var edges int64
	sink := func(res pipeline.Result[[]overlap.Overlap]) error {
		for _, o := range res.Value {
			if err := w.Edge(o); err != nil {
				return errors.Wrapf(err, "failed to write edge %s", o)
			}
			edges++
		}
		return nil
	}

	stats, err := pipeline.Run(ctx, cfg, items, g.Edges, sink)
	if err != nil {
		return edges, errors.Wrap(err, "failed to compute overlaps")
	}
	if err := w.Flush(); err != nil {
		return edges, errors.Wrap(err, "failed to write graph")
	}

	log.Printf("wrote %s edges between %s reads (%s queries skipped)",
		humanize.Comma(edges), humanize.Comma(int64(g.Reads.Len())), humanize.Comma(stats.Failed))
	return edges, nil
}
