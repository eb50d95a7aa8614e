package engine

import (
	"errors"
	"math"
)

// Formula constants.
const (
	// TransitDynamicFactor amplifies the transit stacking load to cover shock
	// and vibration during transport.
	TransitDynamicFactor = 3.0

	// McKeeCoefficient is the empirical constant of the simplified McKee
	// formula relating box compression strength to ECT, caliper and perimeter.
	McKeeCoefficient = 5.87
)

// factors holds every table value one calculation needs.
type factors struct {
	thickness    float64
	rhStorage    float64
	rhTransit    float64
	dwellStorage float64
	dwellTransit float64
	handling     HandlingFactors
}

// preconditions records which guarded quantities can be computed.
// A false flag substitutes 0 for the dependent quantity; it is never an error.
type preconditions struct {
	// sharesPallet is false when there are no packages per layer to carry the pallet weight.
	sharesPallet bool
	// storageReduces and transitReduces are false when the strength-reduction
	// factor for that case would be zero.
	storageReduces bool
	transitReduces bool
	// hasSection is false when the board caliper or the box perimeter is zero.
	hasSection bool
}

// Compute returns the recommended minimum ECT for in.
//
// All categorical inputs are resolved and all numeric inputs checked before
// any arithmetic. If any fail, Compute returns the zero Result and an error
// joining one *FieldError per offending field, numeric fields first. Degenerate but
// valid inputs (no packages per layer, zero perimeter) yield zeros for the
// affected quantities instead of an error.
//
// Identical inputs always produce bit-identical results.
func Compute(in Inputs) (Result, error) {
	errs := validateNumbers(in)
	f, lookupErrs := resolve(in)
	errs = append(errs, lookupErrs...)
	if len(errs) > 0 {
		return Result{}, errors.Join(errs...)
	}

	perimeter := 2 * (in.Length + in.Width)
	pre := checkPreconditions(in, f, perimeter)

	// Only the pallets above the bottom one bear down on it.
	var pwcStorage, pwcTransit float64
	if pre.sharesPallet {
		perPackage := in.PalletWeight / float64(in.PerLayer)
		pwcStorage = perPackage * float64(in.StorageStack-1)
		pwcTransit = perPackage * float64(in.TransitStack-1)
	}

	// Package counts are multiplied in float64 so very tall stacks cannot wrap.
	// Explicit conversions keep each product rounded before the addition so
	// no platform fuses them.
	aboveStorage := float64(float64(in.StorageStack)*float64(in.Layers)) - 1
	aboveTransit := float64(float64(in.TransitStack)*float64(in.Layers)) - 1
	sspStorage := float64(aboveStorage*in.Weight) + pwcStorage
	sspTransit := (float64(aboveTransit*in.Weight) + pwcTransit) * TransitDynamicFactor

	h := f.handling
	srfStorage := f.rhStorage * f.dwellStorage * h.Small1 * h.Small2
	srfTransit := f.rhTransit * f.dwellTransit * h.Small1 * h.Small2

	var csStorage, csTransit float64
	if pre.storageReduces {
		csStorage = sspStorage / srfStorage
	}
	if pre.transitReduces {
		csTransit = sspTransit / srfTransit
	}

	maxCS, governing := csTransit, CaseTransit
	if csStorage > csTransit {
		maxCS, governing = csStorage, CaseStorage
	}

	var ect float64
	if pre.hasSection {
		ect = maxCS / (McKeeCoefficient * math.Sqrt(f.thickness*perimeter))
	}

	return Result{
		InsidePerimeter: perimeter,
		BoardThickness:  f.thickness,
		PWCStorage:      pwcStorage,
		PWCTransit:      pwcTransit,
		SSpStorage:      sspStorage,
		SSpTransit:      sspTransit,
		Handling:        h,
		SRFStorage:      srfStorage,
		SRFTransit:      srfTransit,
		CSStorage:       csStorage,
		CSTransit:       csTransit,
		MaxCS:           maxCS,
		ECT:             ect,
		Governing:       governing,
	}, nil
}

// checkPreconditions evaluates every degenerate-input guard in one place.
func checkPreconditions(in Inputs, f factors, perimeter float64) preconditions {
	h := f.handling
	handlingReduces := h.Small1 > 0 && h.Small2 > 0
	return preconditions{
		sharesPallet:   in.PerLayer != 0,
		storageReduces: handlingReduces && f.rhStorage > 0 && f.dwellStorage > 0,
		transitReduces: handlingReduces && f.rhTransit > 0 && f.dwellTransit > 0,
		hasSection:     f.thickness > 0 && perimeter > 0,
	}
}

// resolve looks up every categorical input, in input order.
func resolve(in Inputs) (factors, []error) {
	var (
		f    factors
		errs []error
		err  error
	)
	if f.thickness, err = FluteThickness(in.Flute); err != nil {
		errs = append(errs, err)
	}
	if f.rhStorage, err = HumidityFactor(FieldRHStorage, in.RHStorage); err != nil {
		errs = append(errs, err)
	}
	if f.rhTransit, err = HumidityFactor(FieldRHTransit, in.RHTransit); err != nil {
		errs = append(errs, err)
	}
	if f.dwellStorage, err = DwellFactor(FieldDwellStorage, in.DwellStorage); err != nil {
		errs = append(errs, err)
	}
	if f.dwellTransit, err = DwellFactor(FieldDwellTransit, in.DwellTransit); err != nil {
		errs = append(errs, err)
	}
	h, handlingErrs := resolveHandling(in)
	errs = append(errs, handlingErrs...)
	f.handling = h
	return f, errs
}

// validateNumbers rejects non-finite or negative measurements and counts.
// Zero lengths, weights and packages per layer are allowed; they are handled
// by the degenerate-input guards.
func validateNumbers(in Inputs) []error {
	var errs []error
	for _, m := range []struct {
		field string
		value float64
	}{
		{FieldLength, in.Length},
		{FieldWidth, in.Width},
		{FieldWeight, in.Weight},
	} {
		if err := checkMeasurement(m.field, m.value); err != nil {
			errs = append(errs, err)
		}
	}

	for _, c := range []struct {
		field string
		value int
	}{
		{FieldLayers, in.Layers},
		{FieldStorageStack, in.StorageStack},
		{FieldTransitStack, in.TransitStack},
	} {
		if c.value < 1 {
			errs = append(errs, fieldErr(c.field, c.value, ErrCountTooSmall))
		}
	}
	if in.PerLayer < 0 {
		errs = append(errs, fieldErr(FieldPerLayer, in.PerLayer, ErrNegativeValue))
	}

	if err := checkMeasurement(FieldPalletWeight, in.PalletWeight); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func checkMeasurement(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fieldErr(field, v, ErrNonFiniteValue)
	case v < 0:
		return fieldErr(field, v, ErrNegativeValue)
	default:
		return nil
	}
}
