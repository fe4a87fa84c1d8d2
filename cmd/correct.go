package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jjtimmons/olap/internal/correct"
	"github.com/jjtimmons/olap/internal/hits"
	"github.com/jjtimmons/olap/internal/pipeline"
)

// correctCmd is for correcting read errors
var correctCmd = &cobra.Command{
	Use:                        "correct",
	Short:                      "Correct sequencing errors in the reads",
	RunE:                       correctExec,
	SuggestionsMinimumDistance: 3,
	Long: `Correct each read with the consensus of the reads overlapping it. A base is
changed when most overlapping reads disagree with it and the read's base is seen
no more often than the error rate predicts.

Corrected reads are written as FASTA, in the order of the reads file. Reads whose
overlap blocks are inconsistent are written as they are.`,
	Example: "  olap correct --reads reads.fa --hits reads.hits.jsonl --error-rate 0.02",
}

func correctExec(cmd *cobra.Command, args []string) (err error) {
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

	out, err := in.output(".ec.fa")
	if err != nil {
		return err
	}
	defer closeOutput(out, &err)

	ctx, cancel := interruptible()
	defer cancel()

	corrector := correct.New(in.conf.ErrorRate)
	corrector.Verify = in.conf.Strict

	items, errc := pipeline.Search(ctx, replay, in.table, in.conf.MinOverlap)
	if _, err := correct.Run(ctx, in.pipelineConfig(), items, corrector, out); err != nil {
		cancel()
		<-errc
		return err
	}
	return <-errc
}

func init() {
	correctCmd.Flags().StringP("reads", "r", "", "FASTA file of the indexed reads")
	correctCmd.Flags().StringP("hits", "i", "", "JSON-lines file of overlap blocks per read")
	correctCmd.Flags().StringP("out", "o", "", "output file, '-' for stdout (default PREFIX.ec.fa)")
	correctCmd.Flags().StringP("prefix", "p", "", "prefix of the output file (default the reads file's name)")
	correctCmd.Flags().IntP("min-overlap", "m", 45, "minimum overlap length")
	correctCmd.Flags().Float64P("error-rate", "e", 0.04, "expected per-base error rate of the reads")

	RootCmd.AddCommand(correctCmd)
}
