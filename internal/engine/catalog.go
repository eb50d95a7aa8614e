package engine

import "fmt"

// TableRow is one entry of a lookup table prepared for display.
type TableRow struct {
	Label  string  `json:"label"          yaml:"label"`
	Factor float64 `json:"factor"         yaml:"factor"`
	Note   string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Table is a named lookup table prepared for display.
type Table struct {
	Name  string     `json:"name"  yaml:"name"`
	Field string     `json:"field" yaml:"field"`
	Unit  string     `json:"unit"  yaml:"unit"`
	Rows  []TableRow `json:"rows"  yaml:"rows"`
}

// Tables returns every lookup table in the order the calculator presents them.
// The returned slices are fresh copies; callers may modify them.
func Tables() []Table {
	flute := Table{Name: "Board flute thickness", Field: FieldFluteType, Unit: "in"}
	for _, f := range fluteOrder {
		flute.Rows = append(flute.Rows, TableRow{Label: string(f), Factor: fluteThickness[f]})
	}

	rh := Table{Name: "Relative humidity", Field: "rh_storage, rh_transit", Unit: "multiplier"}
	for _, h := range humidityOrder {
		rh.Rows = append(rh.Rows, TableRow{Label: fmt.Sprintf("%d%%", h), Factor: humidityFactors[h]})
	}

	dwell := Table{Name: "Dwell time", Field: "dwell_storage, dwell_transit", Unit: "multiplier"}
	for _, d := range dwellOrder {
		dwell.Rows = append(dwell.Rows, TableRow{Label: string(d), Factor: dwellFactors[d]})
	}

	stacking := Table{
		Name: "Stacking pattern", Field: FieldStackingType, Unit: "multiplier",
		Rows: []TableRow{
			{
				Label:  string(StackingInterlocking),
				Factor: InterlockedFactor,
				Note:   "offset layers grip better but carry less load",
			},
			{
				Label:  string(StackingColumn),
				Factor: unaffectedFactor,
				Note:   "corners aligned straight up",
			},
		},
	}

	overhang := Table{Name: "Pallet overhang", Field: FieldOverhang, Unit: "multiplier"}
	for _, o := range overhangOrder {
		row := TableRow{Label: string(o), Factor: overhangFactors[o]}
		if o == OverhangNone {
			row.Note = "flush with the pallet edge"
		}
		overhang.Rows = append(overhang.Rows, row)
	}

	gapped := Table{
		Name: "Gapped pallet", Field: FieldGappedPallet, Unit: "multiplier",
		Rows: []TableRow{
			{Label: string(GappedYes), Factor: GappedDeckFactor, Note: "spaces between deck boards"},
			{Label: string(GappedNo), Factor: unaffectedFactor, Note: "solid deck, full support"},
		},
	}

	misalignment := Table{Name: "Misalignment", Field: FieldMisalignment, Unit: "multiplier"}
	for _, m := range misalignmentOrder {
		row := TableRow{Label: string(m), Factor: misalignmentFactors[m]}
		if m == MisalignNone {
			row.Note = "packages stacked squarely"
		}
		misalignment.Rows = append(misalignment.Rows, row)
	}

	return []Table{flute, rh, dwell, stacking, overhang, gapped, misalignment}
}
