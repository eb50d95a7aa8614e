package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/boxect/internal/engine"
)

// Sheet names of the results workbook.
const (
	SheetResults = "Results"
	SheetFactors = "Factors"
)

// WriteXLSX writes rows to a workbook with a Results sheet (one line per
// scenario: inputs, intermediates, ECT) and a Factors sheet listing every
// lookup table.
func WriteXLSX(w io.Writer, rows []Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), SheetResults); err != nil {
		return fmt.Errorf("naming results sheet: %w", err)
	}
	if err = writeResults(f, rows); err != nil {
		return err
	}

	if _, err = f.NewSheet(SheetFactors); err != nil {
		return fmt.Errorf("adding factors sheet: %w", err)
	}
	if err = writeFactors(f); err != nil {
		return err
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeResults(f *excelize.File, rows []Row) error {
	fields := engine.InputFields()
	lines := engine.Result{}.Lines()

	header := make([]any, 0, 1+len(fields)+len(lines)+2)
	header = append(header, "name")
	for _, field := range fields {
		header = append(header, field)
	}
	for _, l := range lines {
		header = append(header, l.Key)
	}
	header = append(header, "governing_case", "error")
	if err := setRow(f, SheetResults, 1, header); err != nil {
		return err
	}

	for i, r := range rows {
		record := make([]any, 0, len(header))
		record = append(record, r.Name)
		for _, field := range fields {
			v, _ := r.Inputs.Get(field)
			record = append(record, v)
		}
		if r.Err != nil {
			for range lines {
				record = append(record, nil)
			}
			record = append(record, nil, r.Err.Error())
		} else {
			for _, l := range r.Result.Lines() {
				record = append(record, l.Value)
			}
			record = append(record, r.Result.Governing.String(), nil)
		}
		if err := setRow(f, SheetResults, i+2, record); err != nil {
			return err
		}
	}
	return nil
}

func writeFactors(f *excelize.File) error {
	row := 1
	if err := setRow(f, SheetFactors, row, []any{"table", "field", "option", "factor", "unit", "note"}); err != nil {
		return err
	}
	for _, t := range engine.Tables() {
		for _, r := range t.Rows {
			row++
			if err := setRow(f, SheetFactors, row, []any{t.Name, t.Field, r.Label, r.Factor, t.Unit, r.Note}); err != nil {
				return err
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
