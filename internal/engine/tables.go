package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FluteType is the corrugated board flute designation.
type FluteType string

// Supported flute types.
const (
	FluteC  FluteType = "C"
	FluteBC FluteType = "BC"
	FluteB  FluteType = "B"
)

// Humidity is a relative humidity percentage from the tabulated set.
type Humidity int

// DwellTime is a tabulated load duration label.
type DwellTime string

// Tabulated dwell times, shortest first.
const (
	Dwell1Hour   DwellTime = "1h."
	Dwell6Hours  DwellTime = "6h."
	Dwell12Hours DwellTime = "12h."
	Dwell1Day    DwellTime = "1d."
	Dwell2Days   DwellTime = "2d."
	Dwell3Days   DwellTime = "3d."
	Dwell5Days   DwellTime = "5d."
	Dwell10Days  DwellTime = "10d."
	Dwell30Days  DwellTime = "30d."
	Dwell60Days  DwellTime = "60d."
	Dwell90Days  DwellTime = "90d."
	Dwell180Days DwellTime = "180d."
	Dwell1Year   DwellTime = "1yr."
	Dwell2Years  DwellTime = "2yr."
)

// StackingType is the pallet pattern.
type StackingType string

// Stacking patterns.
const (
	StackingInterlocking StackingType = "Interlocking"
	StackingColumn       StackingType = "Column"
)

// Overhang is how far packages hang past the pallet edge.
type Overhang string

// Tabulated overhang distances.
const (
	OverhangNone  Overhang = "0in."
	Overhang04    Overhang = "0.4in."
	Overhang08    Overhang = "0.8in."
	Overhang1     Overhang = "1in."
	OverhangOver1 Overhang = ">1in."
)

// GappedPallet records whether the pallet deck has gaps between boards.
type GappedPallet string

// Pallet deck options.
const (
	GappedYes GappedPallet = "Yes"
	GappedNo  GappedPallet = "No"
)

// Misalignment is the layer-to-layer offset of stacked packages.
type Misalignment string

// Tabulated misalignment distances.
const (
	MisalignNone Misalignment = "0in."
	Misalign05   Misalignment = "0.5in."
	Misalign1    Misalignment = "1in."
	Misalign15   Misalignment = "1.5in."
)

// Binary handling factors.
const (
	// InterlockedFactor applies to interlocking (brick) stacking patterns.
	InterlockedFactor = 0.6

	// GappedDeckFactor applies when the pallet deck boards are gapped.
	GappedDeckFactor = 0.8

	// unaffectedFactor applies when a handling condition causes no loss.
	unaffectedFactor = 1.0
)

// Lookup tables. Read-only after package initialization.
//
//nolint:gochecknoglobals // Immutable reference tables.
var (
	fluteThickness = map[FluteType]float64{
		FluteC:  0.1875,
		FluteBC: 0.3125,
		FluteB:  0.125,
	}

	humidityFactors = map[Humidity]float64{
		30: 1.07, 35: 1.07, 40: 1.05, 45: 1.03, 50: 1.0,
		55: 0.97, 60: 0.93, 65: 0.89, 70: 0.85, 75: 0.77,
		80: 0.71, 85: 0.64, 90: 0.56,
	}

	dwellFactors = map[DwellTime]float64{
		Dwell1Hour: 0.87, Dwell6Hours: 0.79, Dwell12Hours: 0.76, Dwell1Day: 0.73,
		Dwell2Days: 0.7, Dwell3Days: 0.68, Dwell5Days: 0.66, Dwell10Days: 0.63,
		Dwell30Days: 0.6, Dwell60Days: 0.57, Dwell90Days: 0.55, Dwell180Days: 0.52,
		Dwell1Year: 0.5, Dwell2Years: 0.46,
	}

	overhangFactors = map[Overhang]float64{
		OverhangNone:  1.0,
		Overhang04:    0.9,
		Overhang08:    0.8,
		Overhang1:     0.7,
		OverhangOver1: 0.6,
	}

	misalignmentFactors = map[Misalignment]float64{
		MisalignNone: 1.0,
		Misalign05:   0.74,
		Misalign1:    0.57,
		Misalign15:   0.45,
	}
)

// Display order for each table.
//
//nolint:gochecknoglobals // Immutable reference tables.
var (
	fluteOrder    = []FluteType{FluteC, FluteBC, FluteB}
	humidityOrder = []Humidity{30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90}
	dwellOrder    = []DwellTime{
		Dwell1Hour, Dwell6Hours, Dwell12Hours, Dwell1Day, Dwell2Days, Dwell3Days, Dwell5Days,
		Dwell10Days, Dwell30Days, Dwell60Days, Dwell90Days, Dwell180Days, Dwell1Year, Dwell2Years,
	}
	stackingOrder     = []StackingType{StackingInterlocking, StackingColumn}
	overhangOrder     = []Overhang{OverhangNone, Overhang04, Overhang08, Overhang1, OverhangOver1}
	gappedOrder       = []GappedPallet{GappedYes, GappedNo}
	misalignmentOrder = []Misalignment{MisalignNone, Misalign05, Misalign1, Misalign15}
)

// FluteThickness returns the board caliper in inches for a flute type.
func FluteThickness(f FluteType) (float64, error) {
	v, ok := fluteThickness[f]
	if !ok {
		return 0, fieldErr(FieldFluteType, f, ErrUnknownOption)
	}
	return v, nil
}

// HumidityFactor returns the strength multiplier for a relative humidity.
// field names the input being resolved (rh_storage or rh_transit).
func HumidityFactor(field string, rh Humidity) (float64, error) {
	v, ok := humidityFactors[rh]
	if !ok {
		return 0, fieldErr(field, rh, ErrUnknownOption)
	}
	return v, nil
}

// DwellFactor returns the strength multiplier for a load duration.
// field names the input being resolved (dwell_storage or dwell_transit).
func DwellFactor(field string, d DwellTime) (float64, error) {
	v, ok := dwellFactors[d]
	if !ok {
		return 0, fieldErr(field, d, ErrUnknownOption)
	}
	return v, nil
}

// OverhangFactor returns the handling factor for a pallet overhang.
func OverhangFactor(o Overhang) (float64, error) {
	v, ok := overhangFactors[o]
	if !ok {
		return 0, fieldErr(FieldOverhang, o, ErrUnknownOption)
	}
	return v, nil
}

// MisalignmentFactor returns the handling factor for a layer misalignment.
func MisalignmentFactor(m Misalignment) (float64, error) {
	v, ok := misalignmentFactors[m]
	if !ok {
		return 0, fieldErr(FieldMisalignment, m, ErrUnknownOption)
	}
	return v, nil
}

// InterlockFactor returns 0.6 for interlocking stacks and 1.0 for column stacks.
func InterlockFactor(s StackingType) (float64, error) {
	switch s {
	case StackingInterlocking:
		return InterlockedFactor, nil
	case StackingColumn:
		return unaffectedFactor, nil
	default:
		return 0, fieldErr(FieldStackingType, s, ErrUnknownOption)
	}
}

// GappedFactor returns 0.8 for gapped pallet decks and 1.0 for solid ones.
func GappedFactor(g GappedPallet) (float64, error) {
	switch g {
	case GappedYes:
		return GappedDeckFactor, nil
	case GappedNo:
		return unaffectedFactor, nil
	default:
		return 0, fieldErr(FieldGappedPallet, g, ErrUnknownOption)
	}
}

// FluteOptions returns the flute types in display order.
func FluteOptions() []FluteType { return append([]FluteType(nil), fluteOrder...) }

// HumidityOptions returns the tabulated humidities in ascending order.
func HumidityOptions() []Humidity { return append([]Humidity(nil), humidityOrder...) }

// DwellOptions returns the tabulated dwell times, shortest first.
func DwellOptions() []DwellTime { return append([]DwellTime(nil), dwellOrder...) }

// StackingOptions returns the stacking patterns.
func StackingOptions() []StackingType { return append([]StackingType(nil), stackingOrder...) }

// OverhangOptions returns the overhang distances, smallest first.
func OverhangOptions() []Overhang { return append([]Overhang(nil), overhangOrder...) }

// GappedOptions returns the pallet deck options.
func GappedOptions() []GappedPallet { return append([]GappedPallet(nil), gappedOrder...) }

// MisalignmentOptions returns the misalignment distances, smallest first.
func MisalignmentOptions() []Misalignment {
	return append([]Misalignment(nil), misalignmentOrder...)
}

// ParseFluteType parses a flute designation, ignoring case.
func ParseFluteType(s string) (FluteType, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for _, f := range fluteOrder {
		if string(f) == key {
			return f, nil
		}
	}
	return "", unknownOption(s, fluteOrder)
}

// ParseHumidity parses a relative humidity such as "50" or "50%".
func ParseHumidity(s string) (Humidity, error) {
	key := strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, unknownOption(s, humidityOrder)
	}
	if _, ok := humidityFactors[Humidity(n)]; !ok {
		return 0, unknownOption(s, humidityOrder)
	}
	return Humidity(n), nil
}

// ParseDwellTime parses a dwell label. The trailing dot is optional ("3d" or "3d.").
func ParseDwellTime(s string) (DwellTime, error) {
	key := normalizeLabel(s)
	for _, d := range dwellOrder {
		if string(d) == key {
			return d, nil
		}
	}
	return "", unknownOption(s, dwellOrder)
}

// ParseStackingType parses "interlocking" or "column", ignoring case.
func ParseStackingType(s string) (StackingType, error) {
	key := strings.TrimSpace(s)
	for _, st := range stackingOrder {
		if strings.EqualFold(string(st), key) {
			return st, nil
		}
	}
	return "", unknownOption(s, stackingOrder)
}

// ParseOverhang parses an overhang label such as "0.8in.", "0.8in" or "0.8".
func ParseOverhang(s string) (Overhang, error) {
	key := normalizeInches(s)
	for _, o := range overhangOrder {
		if string(o) == key {
			return o, nil
		}
	}
	return "", unknownOption(s, overhangOrder)
}

// ParseGappedPallet parses "yes" or "no", ignoring case.
func ParseGappedPallet(s string) (GappedPallet, error) {
	key := strings.TrimSpace(s)
	for _, g := range gappedOrder {
		if strings.EqualFold(string(g), key) {
			return g, nil
		}
	}
	return "", unknownOption(s, gappedOrder)
}

// ParseMisalignment parses a misalignment label such as "0.5in.", "0.5in" or "0.5".
func ParseMisalignment(s string) (Misalignment, error) {
	key := normalizeInches(s)
	for _, m := range misalignmentOrder {
		if string(m) == key {
			return m, nil
		}
	}
	return "", unknownOption(s, misalignmentOrder)
}

// normalizeLabel lowercases a duration label and restores the trailing dot.
func normalizeLabel(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if key != "" && !strings.HasSuffix(key, ".") {
		key += "."
	}
	return key
}

// normalizeInches maps "0.8", "0.8in" and "0.8in." to the table label "0.8in.".
func normalizeInches(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return key
	}
	key = strings.TrimSuffix(key, ".")
	key = strings.TrimSuffix(key, "in")
	return key + "in."
}

func unknownOption[T any](value string, valid []T) error {
	labels := make([]string, len(valid))
	for i, v := range valid {
		labels[i] = fmt.Sprint(v)
	}
	return fmt.Errorf("%w %q (valid: %s)", ErrUnknownOption, value, strings.Join(labels, ", "))
}
