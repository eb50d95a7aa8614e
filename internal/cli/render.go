package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/engine/batch"
	"github.com/rshade/boxect/internal/report"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// factorKeys are the result lines shown at factor precision regardless of
// the configured output precision.
//
//nolint:gochecknoglobals // Read-only lookup table.
var factorKeys = map[string]bool{"board_thickness": true, "SRF_s": true, "SRF_d": true}

// calcOutput is the structured form of a single calculation.
type calcOutput struct {
	Scenario string        `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Inputs   engine.Inputs `json:"inputs"             yaml:"inputs"`
	Result   engine.Result `json:"result"             yaml:"result"`
}

// outcomeOutput is the structured form of one batch outcome.
type outcomeOutput struct {
	Name   string         `json:"name"             yaml:"name"`
	Inputs engine.Inputs  `json:"inputs"           yaml:"inputs"`
	Result *engine.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string         `json:"error,omitempty"  yaml:"error,omitempty"`
}

// validateFormat checks format against the formats a command supports.
func validateFormat(format string, supported []string) error {
	if slices.Contains(supported, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format %q (valid: %s)", format, strings.Join(supported, ", "))
}

// formatLine formats a result line with the configured precision.
func formatLine(line engine.Line, precision int) string {
	if factorKeys[line.Key] {
		return line.Text
	}
	return engine.FormatFloat(line.Value, precision)
}

// renderCalc writes a single calculation in the requested format.
func renderCalc(w io.Writer, format string, out calcOutput, precision int) error {
	switch format {
	case config.FormatTable:
		return renderCalcTable(w, out, precision)
	case config.FormatJSON:
		return encodeJSON(w, out, true)
	case config.FormatNDJSON:
		return encodeJSON(w, out, false)
	case config.FormatYAML:
		return encodeYAML(w, out)
	case config.FormatProm:
		name := out.Scenario
		if name == "" {
			name = "default"
		}
		return report.WriteMetrics(w, []report.Row{{Name: name, Inputs: out.Inputs, Result: out.Result}})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderCalcTable(w io.Writer, out calcOutput, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if out.Scenario != "" {
		fmt.Fprintf(tw, "Scenario:\t%s\n\n", out.Scenario)
	}
	for _, line := range out.Result.Lines() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", line.Label, formatLine(line, precision), line.Unit)
	}
	fmt.Fprintf(tw, "Governing case\t%s\t\n", out.Result.Governing)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if out.Result.IsDegenerate() {
		_, err := fmt.Fprintf(w, "\nNo recommendation: %s.\n", out.Result.NoRecommendationReason())
		return err
	}
	return nil
}

// batchOutput is the structured form of a batch run.
type batchOutput struct {
	Scenarios  []outcomeOutput `json:"scenarios"            yaml:"scenarios"`
	Summary    batch.Summary   `json:"summary"              yaml:"summary"`
	Pagination any             `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

func toOutcomeOutput(o batch.Outcome) outcomeOutput {
	out := outcomeOutput{Name: o.Name, Inputs: o.Inputs}
	if o.Err != nil {
		out.Error = o.Err.Error()
	} else {
		res := o.Result
		out.Result = &res
	}
	return out
}

// renderBatch writes batch outcomes in a text or structured format. The
// summary always covers the whole batch, not just the page shown.
func renderBatch(w io.Writer, format string, page []batch.Outcome, summary batch.Summary, meta any, precision int) error {
	switch format {
	case config.FormatTable:
		return renderBatchTable(w, page, summary, precision)
	case config.FormatJSON, config.FormatYAML:
		out := batchOutput{Summary: summary, Pagination: meta, Scenarios: make([]outcomeOutput, len(page))}
		for i, o := range page {
			out.Scenarios[i] = toOutcomeOutput(o)
		}
		if format == config.FormatJSON {
			return encodeJSON(w, out, true)
		}
		return encodeYAML(w, out)
	case config.FormatNDJSON:
		for _, o := range page {
			if err := encodeJSON(w, toOutcomeOutput(o), false); err != nil {
				return err
			}
		}
		return encodeJSON(w, ndjsonSummary{Type: "summary", Summary: summary}, false)
	case config.FormatProm:
		return report.WriteMetrics(w, report.RowsFromOutcomes(page))
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// ndjsonSummary is the trailing line of NDJSON batch output.
type ndjsonSummary struct {
	Type string `json:"type"`
	batch.Summary
}

func renderBatchTable(w io.Writer, outcomes []batch.Outcome, summary batch.Summary, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tECT (lb/in)\tGOVERNS\tCS(s) lb\tCS(d) lb\tSTATUS")
	for _, o := range outcomes {
		if !o.OK() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", o.Name, firstLine(o.Err))
			continue
		}
		r := o.Result
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Name,
			engine.FormatFloat(r.ECT, precision),
			r.Governing,
			engine.FormatFloat(r.CSStorage, precision),
			engine.FormatFloat(r.CSTransit, precision),
			"ok",
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%d scenarios: %d ok, %d failed (storage governs %d, transit governs %d)\n",
		summary.Total, summary.OK, summary.Failed, summary.StorageGoverned, summary.TransitGoverned)
	if err != nil {
		return err
	}
	if summary.MaxECTScenario != "" {
		_, err = fmt.Fprintf(w, "Highest ECT: %s (%s)\n",
			engine.FormatECT(summary.MaxECT), summary.MaxECTScenario)
	}
	return err
}

// firstLine returns the first field error of a validation failure, with a
// count of the rest.
func firstLine(err error) string {
	parts := unjoin(err)
	msg := parts[0].Error()
	if len(parts) > 1 {
		msg += fmt.Sprintf(" (+%d more)", len(parts)-1)
	}
	return msg
}

func encodeJSON(w io.Writer, v any, indent bool) error {
	encoder := json.NewEncoder(w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}
