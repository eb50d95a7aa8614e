package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/report"
)

// reportParams holds the flags of the report command.
type reportParams struct {
	inputs  inputParams
	out     string
	title   string
	project string
	author  string
}

// NewReportCmd creates the report command, which writes a PDF for one calculation.
func NewReportCmd() *cobra.Command {
	var params reportParams

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report for one box",
		Long: `Computes the recommendation exactly like "boxect calc" and writes it as a PDF
with the inputs, handling factors, intermediate results and governing case.`,
		Example: `  boxect report --out ect.pdf
  boxect report --scenario scenarios.yaml --name shipper-12 --out shipper-12.pdf \
    --title "Shipper 12" --project "Spring line" --author "Packaging QA"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, &params)
		},
	}

	addInputFlags(cmd, &params.inputs)
	cmd.Flags().StringVar(&params.out, "out", "ect-report.pdf", "PDF file to write")
	cmd.Flags().StringVar(&params.title, "title", report.DefaultTitle, "report title")
	cmd.Flags().StringVar(&params.project, "project", "", "project name shown on the report")
	cmd.Flags().StringVar(&params.author, "author", "", "author shown on the report")

	return cmd
}

func runReport(cmd *cobra.Command, params *reportParams) error {
	ctx := cmd.Context()

	inputs, name, err := resolveInputs(cmd, &params.inputs)
	if err != nil {
		return err
	}
	result, err := computeInputs(ctx, inputs)
	if err != nil {
		return err
	}

	f, err := os.Create(params.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", params.out, err)
	}
	err = report.WritePDF(f, report.Report{
		Title:    params.title,
		Project:  params.project,
		Author:   params.author,
		Scenario: name,
		Inputs:   inputs,
		Result:   result,
		Date:     time.Now(),
	})
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing %s: %w", params.out, closeErr)
	}
	if err != nil {
		return err
	}

	logger.Info().Ctx(ctx).Str("file", params.out).Msg("report written")
	cmd.Printf("Report written to %s (%s)\n", params.out, result.Summary())
	return nil
}
