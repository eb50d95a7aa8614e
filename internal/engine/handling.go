package engine

import "sort"

// limitingFactors returns the two smallest of the four handling factors.
// Only the two most severe handling conditions reduce the strength; the
// other two are treated as non-limiting.
func limitingFactors(interlock, overhang, gapped, misalignment float64) (float64, float64) {
	factors := [4]float64{interlock, overhang, gapped, misalignment}
	sort.Float64s(factors[:])
	return factors[0], factors[1]
}

// resolveHandling looks up the four handling factors and selects the limiting pair.
func resolveHandling(in Inputs) (HandlingFactors, []error) {
	var (
		h    HandlingFactors
		errs []error
		err  error
	)
	if h.Interlock, err = InterlockFactor(in.Stacking); err != nil {
		errs = append(errs, err)
	}
	if h.Overhang, err = OverhangFactor(in.Overhang); err != nil {
		errs = append(errs, err)
	}
	if h.Gapped, err = GappedFactor(in.Gapped); err != nil {
		errs = append(errs, err)
	}
	if h.Misalignment, err = MisalignmentFactor(in.Misalignment); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return HandlingFactors{}, errs
	}
	h.Small1, h.Small2 = limitingFactors(h.Interlock, h.Overhang, h.Gapped, h.Misalignment)
	return h, nil
}
