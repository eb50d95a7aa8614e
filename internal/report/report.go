// Package report exports ECT results as PDF, Excel workbooks and Prometheus
// text exposition.
package report

import (
	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/engine/batch"
)

// Row is one scenario of a multi-scenario export.
type Row struct {
	Name   string
	Inputs engine.Inputs
	Result engine.Result
	// Err is set when the scenario's inputs were rejected.
	Err error
}

// RowsFromOutcomes converts batch outcomes to export rows, keeping order.
func RowsFromOutcomes(outcomes []batch.Outcome) []Row {
	rows := make([]Row, len(outcomes))
	for i, o := range outcomes {
		rows[i] = Row{Name: o.Name, Inputs: o.Inputs, Result: o.Result, Err: o.Err}
	}
	return rows
}
