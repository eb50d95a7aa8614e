package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine"
)

// NewTablesCmd creates the tables command, which prints every lookup table.
func NewTablesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show the lookup tables used by the calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output
			if format == "" {
				format = config.FormatTable
			}
			supported := []string{config.FormatTable, config.FormatJSON, config.FormatYAML}
			if err := validateFormat(format, supported); err != nil {
				return err
			}
			return renderTables(cmd.OutOrStdout(), format, engine.Tables())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	return cmd
}

func renderTables(w io.Writer, format string, tables []engine.Table) error {
	switch format {
	case config.FormatJSON:
		return encodeJSON(w, tables, true)
	case config.FormatYAML:
		return encodeYAML(w, tables)
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s, %s)\n", t.Name, t.Field, t.Unit)
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		for _, r := range t.Rows {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", r.Label, engine.FormatFloat(r.Factor, engine.FactorPrecision), r.Note)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
	}
	return nil
}
