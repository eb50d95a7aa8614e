package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/cli/pagination"
	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine/batch"
	"github.com/rshade/boxect/internal/logging"
	"github.com/rshade/boxect/internal/report"
	"github.com/rshade/boxect/internal/scenario"
)

// batchParams holds the flags of the batch command.
type batchParams struct {
	output      string
	out         string
	concurrency int
	sort        string
	page        pagination.PaginationParams
}

// batchFormats are the output formats of a batch run.
//
//nolint:gochecknoglobals // Read-only list.
var batchFormats = []string{
	config.FormatTable, config.FormatJSON, config.FormatNDJSON, config.FormatYAML,
	config.FormatProm, config.FormatXLSX,
}

// NewBatchCmd creates the batch command, which evaluates every scenario in a file.
func NewBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate every scenario in a file",
		Long: `Evaluates all scenarios of a YAML, JSON or Excel scenario file concurrently.

A scenario whose inputs are rejected is reported with its error; the others
are still evaluated. The summary counts the whole file even when --limit,
--offset or --page show only part of it.`,
		Example: `  # Evaluate a scenario file
  boxect batch scenarios.yaml

  # Most demanding first, top five
  boxect batch scenarios.yaml --sort ect:desc --limit 5

  # Export results to Excel
  boxect batch scenarios.xlsx --output xlsx --out results.xlsx

  # Textfile collector metrics
  boxect batch scenarios.yaml --output prom > /var/lib/node_exporter/boxect.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], &params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"output format: table, json, ndjson, yaml, prom or xlsx (default from configuration)")
	cmd.Flags().StringVar(&params.out, "out", "", "output file (required for xlsx)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", 0,
		"scenarios evaluated at once (default from configuration, 0 = one per CPU)")
	cmd.Flags().StringVar(&params.sort, "sort", "",
		"sort by field[:asc|desc]: name, ect, max_cs, cs_s, cs_d, srf_s, srf_d, weight, perimeter, governing")
	cmd.Flags().IntVar(&params.page.Limit, "limit", pagination.DefaultLimit, "maximum scenarios to show (0 = all)")
	cmd.Flags().IntVar(&params.page.Offset, "offset", pagination.DefaultOffset, "scenarios to skip")
	cmd.Flags().IntVar(&params.page.Page, "page", 0, "page number (1-based, requires --page-size)")
	cmd.Flags().IntVar(&params.page.PageSize, "page-size", 0, "scenarios per page")

	return cmd
}

//nolint:funlen // Linear flow: load, evaluate, sort, page, render.
func runBatch(cmd *cobra.Command, path string, params *batchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format := outputFormat(params.output)
	if err := validateFormat(format, batchFormats); err != nil {
		return err
	}
	if format == config.FormatXLSX && params.out == "" {
		return errors.New("--output xlsx requires --out FILE")
	}
	if params.concurrency < 0 {
		return fmt.Errorf("--concurrency must be >= 0, got %d", params.concurrency)
	}
	if err := params.page.Validate(); err != nil {
		return err
	}
	field, order, err := pagination.ParseSort(params.sort)
	if err != nil {
		return err
	}
	sorter := pagination.NewOutcomeSorter()
	if err = sorter.Validate(field); err != nil {
		return err
	}

	doc, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}

	concurrency := params.concurrency
	if !cmd.Flags().Changed("concurrency") {
		concurrency = config.GetGlobalConfig().EffectiveConcurrency()
	}

	outcomes, err := batch.Evaluate(ctx, doc.Scenarios, batch.Options{
		Concurrency: concurrency,
		OnProgress: func(p batch.ProgressSnapshot) {
			log.Trace().Ctx(ctx).
				Int("processed", p.Processed).
				Int("total", p.Total).
				Float64("percent", p.PercentComplete).
				Msg("batch progress")
		},
	})
	if err != nil {
		return err
	}
	summary := batch.Summarize(outcomes)

	log.Info().Ctx(ctx).
		Str("file", path).
		Int("scenarios", summary.Total).
		Int("failed", summary.Failed).
		Int("concurrency", concurrency).
		Msg("batch evaluated")

	page := pagination.Apply(params.page, sorter.Sort(outcomes, field, order))
	var meta any
	if params.page.IsEnabled() {
		meta = pagination.NewPaginationMeta(params.page, len(outcomes))
	}

	if format == config.FormatXLSX {
		return writeXLSXFile(cmd, params.out, page)
	}

	w := cmd.OutOrStdout()
	if params.out != "" {
		f, createErr := os.Create(params.out)
		if createErr != nil {
			return fmt.Errorf("creating %s: %w", params.out, createErr)
		}
		defer f.Close()
		w = f
	}
	return renderBatch(w, format, page, summary, meta, config.GetOutputPrecision())
}

func writeXLSXFile(cmd *cobra.Command, path string, outcomes []batch.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = report.WriteXLSX(f, report.RowsFromOutcomes(outcomes)); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	cmd.Printf("Wrote %d scenarios to %s\n", len(outcomes), path)
	return nil
}
