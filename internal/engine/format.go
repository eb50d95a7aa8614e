package engine

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Display precisions used by every result view.
const (
	// LoadPrecision applies to lengths, loads, strengths and ECT.
	LoadPrecision = 2
	// FactorPrecision applies to board caliper and strength-reduction factors.
	FactorPrecision = 4
)

// Line is one labelled, formatted value of a result view.
type Line struct {
	Key   string  `json:"key"   yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Text  string  `json:"text"  yaml:"text"`
	Unit  string  `json:"unit"  yaml:"unit"`
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	formatted := strconv.FormatFloat(math.Abs(f), 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	sign := ""
	if f < 0 && strings.Trim(formatted, "0.") != "" {
		sign = "-"
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + formatted
	}
	grouped := printer.Sprintf("%d", n)
	if hasFrac {
		return sign + grouped + "." + fracPart
	}
	return sign + grouped
}

// Lines returns the result in display order, formatted with the
// calculator's precisions. The last line is the recommended ECT.
func (r Result) Lines() []Line {
	line := func(key, label string, v float64, precision int, unit string) Line {
		return Line{Key: key, Label: label, Value: v, Text: FormatFloat(v, precision), Unit: unit}
	}
	return []Line{
		line("inside_perimeter", "Inside Perimeter", r.InsidePerimeter, LoadPrecision, "in"),
		line("board_thickness", "Board Thickness", r.BoardThickness, FactorPrecision, "in"),
		line("PWC_s", "PWC(s)", r.PWCStorage, LoadPrecision, "lb"),
		line("SSp_s", "SSp(s)", r.SSpStorage, LoadPrecision, "lb"),
		line("PWC_d", "PWC(d)", r.PWCTransit, LoadPrecision, "lb"),
		line("SSp_d", "SSp(d)", r.SSpTransit, LoadPrecision, "lb"),
		line("SRF_s", "SRF(s)", r.SRFStorage, FactorPrecision, ""),
		line("SRF_d", "SRF(d)", r.SRFTransit, FactorPrecision, ""),
		line("CS_s", "CS(s)", r.CSStorage, LoadPrecision, "lb"),
		line("CS_d", "CS(d)", r.CSTransit, LoadPrecision, "lb"),
		line("ect", "Recommended Minimum ECT", r.ECT, LoadPrecision, "lb/in"),
	}
}

// FormatECT formats an ECT value the way the results view shows it: "49.78 lb/in".
func FormatECT(ect float64) string {
	return FormatFloat(ect, LoadPrecision) + " lb/in"
}
