// Package engine computes the recommended minimum Edge Crush Test (ECT) value
// for a Regular Slotted Container.
//
// The calculation combines the static stacking load on the bottom package of a
// palletized load, amplified for transit, with tabulated strength-reduction
// factors for humidity, dwell time and pallet handling. The required box
// compression strength is then converted to ECT with the McKee relation:
//
//	ECT = BCT / (5.87 * sqrt(caliper * perimeter))
//
// Compute is a pure function. The lookup tables are package-level constants
// and are safe to share across goroutines.
package engine

import "fmt"

// Input field names used in validation errors and in scenario documents.
const (
	FieldLength       = "length_in"
	FieldWidth        = "width_in"
	FieldWeight       = "weight_lb"
	FieldFluteType    = "flute_type"
	FieldLayers       = "layers"
	FieldPerLayer     = "per_layer"
	FieldStorageStack = "storage_stack"
	FieldTransitStack = "transit_stack"
	FieldPalletWeight = "pallet_weight_lb"
	FieldRHStorage    = "rh_storage"
	FieldRHTransit    = "rh_transit"
	FieldDwellStorage = "dwell_storage"
	FieldDwellTransit = "dwell_transit"
	FieldStackingType = "stacking_type"
	FieldOverhang     = "overhang"
	FieldGappedPallet = "gapped_pallet"
	FieldMisalignment = "misalignment"
)

// InputFields returns every input field name in form order.
func InputFields() []string {
	return []string{
		FieldLength, FieldWidth, FieldWeight, FieldFluteType,
		FieldLayers, FieldPerLayer, FieldStorageStack, FieldTransitStack, FieldPalletWeight,
		FieldRHStorage, FieldRHTransit, FieldDwellStorage, FieldDwellTransit,
		FieldStackingType, FieldOverhang, FieldGappedPallet, FieldMisalignment,
	}
}

// Inputs holds everything one ECT calculation needs.
type Inputs struct {
	// Length is the box inside length L in inches.
	Length float64 `json:"length_in" yaml:"length_in"`
	// Width is the box inside width w in inches.
	Width float64 `json:"width_in" yaml:"width_in"`
	// Weight is the weight W of one filled package in pounds.
	Weight float64 `json:"weight_lb" yaml:"weight_lb"`
	// Flute selects the board caliper.
	Flute FluteType `json:"flute_type" yaml:"flute_type"`

	// Layers is n, the number of package layers on one pallet.
	Layers int `json:"layers" yaml:"layers"`
	// PerLayer is npl, the number of packages in one layer.
	PerLayer int `json:"per_layer" yaml:"per_layer"`
	// StorageStack is Ns, the number of pallet loads stacked in the warehouse.
	StorageStack int `json:"storage_stack" yaml:"storage_stack"`
	// TransitStack is Nd, the number of pallet loads stacked in transit.
	TransitStack int `json:"transit_stack" yaml:"transit_stack"`
	// PalletWeight is the weight of one empty pallet in pounds.
	PalletWeight float64 `json:"pallet_weight_lb" yaml:"pallet_weight_lb"`

	RHStorage    Humidity  `json:"rh_storage"    yaml:"rh_storage"`
	RHTransit    Humidity  `json:"rh_transit"    yaml:"rh_transit"`
	DwellStorage DwellTime `json:"dwell_storage" yaml:"dwell_storage"`
	DwellTransit DwellTime `json:"dwell_transit" yaml:"dwell_transit"`

	Stacking     StackingType `json:"stacking_type" yaml:"stacking_type"`
	Overhang     Overhang     `json:"overhang"      yaml:"overhang"`
	Gapped       GappedPallet `json:"gapped_pallet" yaml:"gapped_pallet"`
	Misalignment Misalignment `json:"misalignment"  yaml:"misalignment"`
}

// DefaultInputs returns the calculator's starting values: a 17.125 x 8.75 in
// C-flute box of 11.25 lb, 9 layers of 10 on a 45 lb pallet, two pallets high
// in storage and one in transit.
func DefaultInputs() Inputs {
	return Inputs{
		Length:       17.125,
		Width:        8.75,
		Weight:       11.25,
		Flute:        FluteC,
		Layers:       9,
		PerLayer:     10,
		StorageStack: 2,
		TransitStack: 1,
		PalletWeight: 45,
		RHStorage:    50,
		RHTransit:    45,
		DwellStorage: Dwell3Days,
		DwellTransit: Dwell30Days,
		Stacking:     StackingInterlocking,
		Overhang:     Overhang08,
		Gapped:       GappedYes,
		Misalignment: MisalignNone,
	}
}

// Case identifies which load case governs the required strength.
type Case string

// Load cases.
const (
	CaseStorage Case = "Storage"
	CaseTransit Case = "Transit"
)

// String returns the display name of the case.
func (c Case) String() string {
	if c == "" {
		return "Case(unset)"
	}
	return string(c)
}

// HandlingFactors records the four pallet handling factors and the two
// smallest of them, which are the only ones applied to the strength.
type HandlingFactors struct {
	Interlock    float64 `json:"interlock"    yaml:"interlock"`
	Overhang     float64 `json:"overhang"     yaml:"overhang"`
	Gapped       float64 `json:"gapped"       yaml:"gapped"`
	Misalignment float64 `json:"misalignment" yaml:"misalignment"`
	Small1       float64 `json:"small1"       yaml:"small1"`
	Small2       float64 `json:"small2"       yaml:"small2"`
}

// Result holds the recommended ECT and every intermediate quantity.
// Loads and strengths are in pounds, lengths in inches, ECT in lb/in.
type Result struct {
	InsidePerimeter float64         `json:"inside_perimeter" yaml:"inside_perimeter"`
	BoardThickness  float64         `json:"board_thickness"  yaml:"board_thickness"`
	PWCStorage      float64         `json:"PWC_s"            yaml:"PWC_s"`
	PWCTransit      float64         `json:"PWC_d"            yaml:"PWC_d"`
	SSpStorage      float64         `json:"SSp_s"            yaml:"SSp_s"`
	SSpTransit      float64         `json:"SSp_d"            yaml:"SSp_d"`
	Handling        HandlingFactors `json:"handling_factors" yaml:"handling_factors"`
	SRFStorage      float64         `json:"SRF_s"            yaml:"SRF_s"`
	SRFTransit      float64         `json:"SRF_d"            yaml:"SRF_d"`
	CSStorage       float64         `json:"CS_s"             yaml:"CS_s"`
	CSTransit       float64         `json:"CS_d"             yaml:"CS_d"`
	MaxCS           float64         `json:"max_cs"           yaml:"max_cs"`
	ECT             float64         `json:"ect"              yaml:"ect"`
	Governing       Case            `json:"governing_case"   yaml:"governing_case"`
}

// IsDegenerate reports whether the result carries no usable recommendation.
// NoRecommendationReason says why.
func (r Result) IsDegenerate() bool {
	return r.ECT == 0
}

// NoRecommendationReason explains a degenerate result, or returns "" when the
// result has a recommendation. A result with no load is reported as such even
// when the box also has no section.
func (r Result) NoRecommendationReason() string {
	switch {
	case !r.IsDegenerate():
		return ""
	case r.MaxCS == 0:
		return "nothing bears on the bottom package"
	default:
		return "the box has no perimeter or the board has no caliper"
	}
}

// Summary returns a one-line description of the recommendation.
func (r Result) Summary() string {
	return fmt.Sprintf("Recommended minimum ECT %.2f lb/in (%s governs, CS %.2f lb)",
		r.ECT, r.Governing, r.MaxCS)
}
