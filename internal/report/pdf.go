package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/rshade/boxect/internal/engine"
)

// DefaultTitle is used when a Report has no title.
const DefaultTitle = "Recommended Minimum ECT"

const (
	lineHeight  = 6.0
	labelWidth  = 80.0
	valueWidth  = 50.0
	unitWidth   = 30.0
	headingSize = 16.0
	sectionSize = 12.0
	bodySize    = 10.0
)

// Report is a single-scenario PDF report.
type Report struct {
	Title    string
	Project  string
	Author   string
	Scenario string
	Inputs   engine.Inputs
	Result   engine.Result
	// Date defaults to the current time.
	Date time.Time
}

// WritePDF renders r as an A4 PDF document.
func WritePDF(w io.Writer, r Report) error {
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAuthor(r.Author, false)
	pdf.SetCreator("boxect", false)
	pdf.SetCreationDate(date)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", headingSize)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", bodySize)
	for _, meta := range []struct{ label, value string }{
		{"Project", r.Project},
		{"Author", r.Author},
		{"Scenario", r.Scenario},
		{"Date", date.Format("2006-01-02")},
	} {
		if meta.value == "" {
			continue
		}
		pdf.Cell(0, lineHeight, fmt.Sprintf("%s: %s", meta.label, meta.value))
		pdf.Ln(lineHeight)
	}
	pdf.Ln(4)

	section(pdf, "Inputs")
	for _, field := range engine.InputFields() {
		v, _ := r.Inputs.Get(field)
		tableRow(pdf, engine.FieldLabel(field), v, engine.FieldUnit(field))
	}
	pdf.Ln(4)

	section(pdf, "Handling factors")
	h := r.Result.Handling
	for _, f := range []struct {
		label string
		value float64
	}{
		{"Interlock", h.Interlock},
		{"Overhang", h.Overhang},
		{"Gapped pallet", h.Gapped},
		{"Misalignment", h.Misalignment},
		{"Applied (smallest)", h.Small1},
		{"Applied (second smallest)", h.Small2},
	} {
		tableRow(pdf, f.label, engine.FormatFloat(f.value, engine.FactorPrecision), "")
	}
	pdf.Ln(4)

	section(pdf, "Results")
	for _, line := range r.Result.Lines() {
		if line.Key == "ect" {
			pdf.SetFont("Helvetica", "B", bodySize)
		}
		tableRow(pdf, line.Label, line.Text, line.Unit)
	}
	pdf.SetFont("Helvetica", "", bodySize)
	tableRow(pdf, "Governing case", r.Result.Governing.String(), "")
	pdf.Ln(6)

	summary := r.Result.Summary()
	if r.Result.IsDegenerate() {
		summary = "No recommendation: " + r.Result.NoRecommendationReason() + "."
	}
	pdf.MultiCell(0, lineHeight, summary, "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, name string) {
	pdf.SetFont("Helvetica", "B", sectionSize)
	pdf.Cell(0, lineHeight+2, name)
	pdf.Ln(lineHeight + 2)
	pdf.SetFont("Helvetica", "", bodySize)
}

func tableRow(pdf *gofpdf.Fpdf, label, value, unit string) {
	pdf.CellFormat(labelWidth, lineHeight, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, lineHeight, value, "B", 0, "R", false, 0, "")
	pdf.CellFormat(unitWidth, lineHeight, unit, "B", 1, "L", false, 0, "")
}
