package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField indicates a field name that is not an input.
var ErrUnknownField = constError("unknown input field")

// FieldLabel returns the human-readable label of an input field.
func FieldLabel(field string) string {
	switch field {
	case FieldLength:
		return "Length (L)"
	case FieldWidth:
		return "Width (w)"
	case FieldWeight:
		return "Package weight (W)"
	case FieldFluteType:
		return "Flute type"
	case FieldLayers:
		return "Layers per pallet (n)"
	case FieldPerLayer:
		return "Packages per layer (npl)"
	case FieldStorageStack:
		return "Pallets high, storage (Ns)"
	case FieldTransitStack:
		return "Pallets high, transit (Nd)"
	case FieldPalletWeight:
		return "Pallet weight"
	case FieldRHStorage:
		return "RH, storage"
	case FieldRHTransit:
		return "RH, transit"
	case FieldDwellStorage:
		return "Dwell time, storage"
	case FieldDwellTransit:
		return "Dwell time, transit"
	case FieldStackingType:
		return "Stacking pattern"
	case FieldOverhang:
		return "Pallet overhang"
	case FieldGappedPallet:
		return "Gapped pallet"
	case FieldMisalignment:
		return "Misalignment"
	default:
		return field
	}
}

// FieldUnit returns the unit of a numeric input field, or "".
func FieldUnit(field string) string {
	switch field {
	case FieldLength, FieldWidth:
		return "in"
	case FieldWeight, FieldPalletWeight:
		return "lb"
	case FieldRHStorage, FieldRHTransit:
		return "%"
	default:
		return ""
	}
}

// Get returns the value of field as text, the way Set accepts it.
func (in Inputs) Get(field string) (string, error) {
	switch field {
	case FieldLength:
		return formatMeasure(in.Length), nil
	case FieldWidth:
		return formatMeasure(in.Width), nil
	case FieldWeight:
		return formatMeasure(in.Weight), nil
	case FieldFluteType:
		return string(in.Flute), nil
	case FieldLayers:
		return strconv.Itoa(in.Layers), nil
	case FieldPerLayer:
		return strconv.Itoa(in.PerLayer), nil
	case FieldStorageStack:
		return strconv.Itoa(in.StorageStack), nil
	case FieldTransitStack:
		return strconv.Itoa(in.TransitStack), nil
	case FieldPalletWeight:
		return formatMeasure(in.PalletWeight), nil
	case FieldRHStorage:
		return strconv.Itoa(int(in.RHStorage)), nil
	case FieldRHTransit:
		return strconv.Itoa(int(in.RHTransit)), nil
	case FieldDwellStorage:
		return string(in.DwellStorage), nil
	case FieldDwellTransit:
		return string(in.DwellTransit), nil
	case FieldStackingType:
		return string(in.Stacking), nil
	case FieldOverhang:
		return string(in.Overhang), nil
	case FieldGappedPallet:
		return string(in.Gapped), nil
	case FieldMisalignment:
		return string(in.Misalignment), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownField, field)
	}
}

// Set parses value and stores it in field. Categorical values go through the
// lenient Parse functions, so "bc", "50%" and "0.8in" are all accepted.
// Range checks are left to Compute. On error in is left unchanged.
func (in *Inputs) Set(field, value string) error {
	value = strings.TrimSpace(value)
	next := *in
	var err error
	switch field {
	case FieldLength:
		next.Length, err = parseMeasure(value)
	case FieldWidth:
		next.Width, err = parseMeasure(value)
	case FieldWeight:
		next.Weight, err = parseMeasure(value)
	case FieldPalletWeight:
		next.PalletWeight, err = parseMeasure(value)
	case FieldLayers:
		next.Layers, err = parseCount(value)
	case FieldPerLayer:
		next.PerLayer, err = parseCount(value)
	case FieldStorageStack:
		next.StorageStack, err = parseCount(value)
	case FieldTransitStack:
		next.TransitStack, err = parseCount(value)
	case FieldFluteType:
		next.Flute, err = ParseFluteType(value)
	case FieldRHStorage:
		next.RHStorage, err = ParseHumidity(value)
	case FieldRHTransit:
		next.RHTransit, err = ParseHumidity(value)
	case FieldDwellStorage:
		next.DwellStorage, err = ParseDwellTime(value)
	case FieldDwellTransit:
		next.DwellTransit, err = ParseDwellTime(value)
	case FieldStackingType:
		next.Stacking, err = ParseStackingType(value)
	case FieldOverhang:
		next.Overhang, err = ParseOverhang(value)
	case FieldGappedPallet:
		next.Gapped, err = ParseGappedPallet(value)
	case FieldMisalignment:
		next.Misalignment, err = ParseMisalignment(value)
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*in = next
	return nil
}

// Options returns the valid values of a categorical field as text, or nil
// for a numeric field.
func Options(field string) []string {
	switch field {
	case FieldFluteType:
		return toStrings(fluteOrder)
	case FieldRHStorage, FieldRHTransit:
		out := make([]string, len(humidityOrder))
		for i, h := range humidityOrder {
			out[i] = strconv.Itoa(int(h))
		}
		return out
	case FieldDwellStorage, FieldDwellTransit:
		return toStrings(dwellOrder)
	case FieldStackingType:
		return toStrings(stackingOrder)
	case FieldOverhang:
		return toStrings(overhangOrder)
	case FieldGappedPallet:
		return toStrings(gappedOrder)
	case FieldMisalignment:
		return toStrings(misalignmentOrder)
	default:
		return nil
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseMeasure(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q", s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a whole number %q", s)
	}
	return v, nil
}
