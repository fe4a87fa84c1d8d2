package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/pipeline"
	"github.com/jjtimmons/olap/internal/rmdup"
)

// rmdupCmd is for removing duplicate reads
var rmdupCmd = &cobra.Command{
	Use:                        "rmdup",
	Short:                      "Remove duplicate reads from the read set",
	RunE:                       rmdupExec,
	SuggestionsMinimumDistance: 3,
	Long: `Remove the reads that are a substring of another read, or contained by or
identical to another read. Of a set of identical reads the first is kept.

The remaining reads are written as FASTA, in the order of the reads file. A read
without a hits record has no overlaps and is kept.`,
	Example: "  olap rmdup --reads reads.fa --hits reads.hits.jsonl",
}

func rmdupExec(cmd *cobra.Command, args []string) (err error) {
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

	out, err := in.output(".rmdup.fa")
	if err != nil {
		return err
	}
	defer closeOutput(out, &err)

	ctx, cancel := interruptible()
	defer cancel()

	remover := rmdup.New(in.table)
	remover.Verify = in.conf.Strict

	// every block counts, whatever its length
	items, errc := pipeline.Search(ctx, replay, in.table, 0)
	if _, _, err := rmdup.Run(ctx, in.pipelineConfig(), items, remover, out); err != nil {
		cancel()
		<-errc
		return err
	}
	return <-errc
}

func init() {
	rmdupCmd.Flags().StringP("reads", "r", "", "FASTA file of the indexed reads")
	rmdupCmd.Flags().StringP("hits", "i", "", "JSON-lines file of overlap blocks per read")
	rmdupCmd.Flags().StringP("out", "o", "", "output file, '-' for stdout (default PREFIX.rmdup.fa)")
	rmdupCmd.Flags().StringP("prefix", "p", "", "prefix of the output file (default the reads file's name)")

	RootCmd.AddCommand(rmdupCmd)
}
