package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jjtimmons/olap/internal/graph"
	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/pipeline"
)

// overlapCmd is for building the string graph of a read set
var overlapCmd = &cobra.Command{
	Use:                        "overlap",
	Short:                      "Write the overlaps between reads as a string graph",
	RunE:                       overlapExec,
	SuggestionsMinimumDistance: 3,
	Long: `Expand the overlap blocks found for each read into overlaps with every read
they cover. Blocks of a read that cover the same reads are resolved first, so each
pair of reads has at most one overlap: the longest.

The graph is written as ASQG (a vertex per read and an edge per overlap) or as
a TSV of edges.`,
	Example: "  olap overlap --reads reads.fa --hits reads.hits.jsonl.gz --min-overlap 31 -o reads.asqg",
}

func overlapExec(cmd *cobra.Command, args []string) (err error) {
	in, err := loadInputs()
	if err != nil {
		return err
	}
	defer in.close()

	records, err := in.hits.ReadAll()
	if err != nil {
		return err
	}
	replay, err := hits.NewReplay(records)
	if err != nil {
		return err
	}

	out, err := in.output("." + in.conf.Format)
	if err != nil {
		return err
	}
	defer closeOutput(out, &err)

	w, err := graph.NewWriter(out, in.conf.Format)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	items, errc := pipeline.Search(ctx, replay, in.table, in.conf.MinOverlap)
	builder := graph.New(in.table, in.conf.ExcludeContainments)
	builder.Verify = in.conf.Strict
	header := graph.Header{ErrorRate: in.conf.ErrorRate, MinOverlap: in.conf.MinOverlap, Input: in.readsPath}
	if _, err := graph.Run(ctx, in.pipelineConfig(), items, builder, header, w); err != nil {
		cancel()
		<-errc
		return err
	}
	return <-errc
}

func init() {
	overlapCmd.Flags().StringP("reads", "r", "", "FASTA file of the indexed reads")
	overlapCmd.Flags().StringP("hits", "i", "", "JSON-lines file of overlap blocks per read")
	overlapCmd.Flags().StringP("out", "o", "", "output file, '-' for stdout (default PREFIX.FORMAT)")
	overlapCmd.Flags().StringP("prefix", "p", "", "prefix of the output file (default the reads file's name)")
	overlapCmd.Flags().IntP("min-overlap", "m", 45, "minimum overlap length")
	overlapCmd.Flags().Float64P("error-rate", "e", 0.04, "maximum error rate of an overlap")
	overlapCmd.Flags().StringP("format", "f", "asqg", "graph format: asqg or tsv")
	overlapCmd.Flags().Bool("no-contained", false, "leave containment edges out of the graph")

	RootCmd.AddCommand(overlapCmd)
}
