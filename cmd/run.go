package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jjtimmons/olap/config"
	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/reads"
)

// inputs are the reads and hits shared by every command
type inputs struct {
	conf      *config.Config
	readsPath string
	table     *reads.Table
	hits      *hits.Reader
}

// loadInputs reads the settings and the read table, and opens the hits file
func loadInputs() (*inputs, error) {
	conf, err := config.New()
	if err != nil {
		return nil, err
	}
	if conf.Verbose {
		log.Printf("settings: %+v", *conf)
	}

	readsPath := viper.GetString("reads")
	if readsPath == "" {
		return nil, errors.New("no reads file, set one with --reads")
	}
	hitsPath := viper.GetString("hits")
	if hitsPath == "" {
		return nil, errors.New("no hits file, set one with --hits")
	}

	table, err := reads.Load(readsPath)
	if err != nil {
		return nil, err
	}
	r, err := hits.Open(hitsPath)
	if err != nil {
		return nil, err
	}
	return &inputs{conf: conf, readsPath: readsPath, table: table, hits: r}, nil
}

// pipelineConfig is the worker pool's settings for a run over the table
func (in *inputs) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		Threads:  in.conf.Threads,
		Strict:   in.conf.Strict,
		Progress: !in.conf.Quiet,
		Total:    int64(in.table.Len()),
	}
}

// output creates the output file: --out if set, then the prefix (or the
// reads file's name) with suffix appended
func (in *inputs) output(suffix string) (io.WriteCloser, error) {
	path := in.conf.Out
	if path == "" {
		prefix := in.conf.Prefix
		if prefix == "" {
			base := filepath.Base(in.readsPath)
			for _, ext := range []string{".gz", ".fasta", ".fa"} {
				base = strings.TrimSuffix(base, ext)
			}
			prefix = base
		}
		path = prefix + suffix
	}
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create output")
	}
	log.Printf("writing %s", path)
	return f, nil
}

// close the hits file
func (in *inputs) close() {
	if err := in.hits.Close(); err != nil {
		log.Error.Printf("failed to close hits: %v", err)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// interruptible returns a context canceled on an interrupt
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// closeOutput closes w, keeping the first error of the run
func closeOutput(w io.Closer, err *error) {
	if cerr := w.Close(); cerr != nil && *err == nil {
		*err = errors.Wrap(cerr, "failed to close output")
	}
}
