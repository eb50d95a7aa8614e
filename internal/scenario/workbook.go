package scenario

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/boxect/internal/engine"
)

// nameColumn is the header of the scenario name column in a workbook.
const nameColumn = "name"

// ErrEmptyWorkbook is returned when the first sheet has no scenario rows.
var ErrEmptyWorkbook = errors.New("workbook has no scenario rows")

// ReadWorkbook reads scenarios from the first sheet of an XLSX workbook.
//
// The first row is a header: a "name" column plus one column per input,
// titled with the field name (for example "flute_type") or its label
// ("Flute type"), case-insensitively. Each following row is one scenario.
// Blank cells and missing columns take the built-in default inputs.
func ReadWorkbook(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	columns, err := headerFields(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q header: %w", sheet, err)
	}

	doc := &Document{
		Version:            CurrentVersion,
		UseBuiltinDefaults: true,
		Defaults:           engine.DefaultInputs(),
	}
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		s, rowErr := scenarioFromRow(row, columns, doc.Defaults)
		if rowErr != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+2, rowErr)
		}
		doc.Scenarios = append(doc.Scenarios, s)
	}
	if len(doc.Scenarios) == 0 {
		return nil, ErrEmptyWorkbook
	}
	if err = checkNames(doc.Scenarios); err != nil {
		return nil, err
	}
	return doc, nil
}

// headerFields maps each header cell to an input field name, or nameColumn.
func headerFields(header []string) ([]string, error) {
	byLabel := make(map[string]string)
	for _, field := range engine.InputFields() {
		byLabel[field] = field
		byLabel[strings.ToLower(engine.FieldLabel(field))] = field
	}
	byLabel[nameColumn] = nameColumn
	byLabel["scenario"] = nameColumn

	columns := make([]string, len(header))
	hasName := false
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if key == "" {
			continue
		}
		field, ok := byLabel[key]
		if !ok {
			return nil, fmt.Errorf("column %d: %w %q", i+1, ErrUnknownField, cell)
		}
		hasName = hasName || field == nameColumn
		columns[i] = field
	}
	if !hasName {
		return nil, fmt.Errorf("no %q column", nameColumn)
	}
	return columns, nil
}

func scenarioFromRow(row, columns []string, defaults engine.Inputs) (Scenario, error) {
	s := Scenario{Inputs: defaults}
	for i, cell := range row {
		if i >= len(columns) || columns[i] == "" || strings.TrimSpace(cell) == "" {
			continue
		}
		if columns[i] == nameColumn {
			s.Name = strings.TrimSpace(cell)
			continue
		}
		if err := s.Inputs.Set(columns[i], cell); err != nil {
			return Scenario{}, err
		}
	}
	return s, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
