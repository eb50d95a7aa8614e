package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompute_ReferenceCase pins the exact results of the calculator's default
// inputs as a regression baseline.
func TestCompute_ReferenceCase(t *testing.T) {
	got, err := Compute(DefaultInputs())
	require.NoError(t, err)

	assert.Equal(t, 51.75, got.InsidePerimeter)
	assert.Equal(t, 0.1875, got.BoardThickness)
	assert.Equal(t, 4.5, got.PWCStorage)
	assert.Equal(t, 0.0, got.PWCTransit)
	assert.Equal(t, 195.75, got.SSpStorage) // (2*9-1)*11.25 + 4.5
	assert.Equal(t, 270.0, got.SSpTransit)  // ((1*9-1)*11.25 + 0) * 3

	assert.Equal(t, HandlingFactors{
		Interlock:    0.6,
		Overhang:     0.8,
		Gapped:       0.8,
		Misalignment: 1.0,
		Small1:       0.6,
		Small2:       0.8,
	}, got.Handling)

	assert.Equal(t, 0.3264, got.SRFStorage)
	assert.Equal(t, 0.29663999999999996, got.SRFTransit)
	assert.Equal(t, 599.7242647058823, got.CSStorage)
	assert.Equal(t, 910.1941747572816, got.CSTransit)
	assert.Equal(t, 910.1941747572816, got.MaxCS)
	assert.Equal(t, CaseTransit, got.Governing)
	assert.Equal(t, 49.7783087799446, got.ECT)
	assert.Equal(t, "49.78 lb/in", FormatECT(got.ECT))
}

func TestCompute_Deterministic(t *testing.T) {
	in := DefaultInputs()
	first, err := Compute(in)
	require.NoError(t, err)

	for range 10 {
		again, againErr := Compute(in)
		require.NoError(t, againErr)
		assert.Equal(t, math.Float64bits(first.ECT), math.Float64bits(again.ECT))
		assert.Equal(t, first, again)
	}
}

func TestCompute_DoesNotRetainState(t *testing.T) {
	base := DefaultInputs()
	before, err := Compute(base)
	require.NoError(t, err)

	heavy := base
	heavy.Weight = 40
	heavy.StorageStack = 4
	_, err = Compute(heavy)
	require.NoError(t, err)

	after, err := Compute(base)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCompute_InsidePerimeter(t *testing.T) {
	tests := []struct {
		length, width float64
	}{
		{17.125, 8.75},
		{10, 10},
		{0.5, 36.25},
		{0, 0},
	}

	for _, tt := range tests {
		in := DefaultInputs()
		in.Length, in.Width = tt.length, tt.width
		got, err := Compute(in)
		require.NoError(t, err)
		assert.Equal(t, 2*(tt.length+tt.width), got.InsidePerimeter)
	}
}

func TestCompute_ZeroPackagesPerLayer(t *testing.T) {
	in := DefaultInputs()
	in.PerLayer = 0
	in.TransitStack = 3

	got, err := Compute(in)
	require.NoError(t, err)
	assert.Zero(t, got.PWCStorage)
	assert.Zero(t, got.PWCTransit)
	assert.Equal(t, 191.25, got.SSpStorage)
	assert.False(t, math.IsNaN(got.ECT))
	assert.False(t, math.IsInf(got.ECT, 0))
}

func TestCompute_ZeroSectionYieldsZeroECT(t *testing.T) {
	in := DefaultInputs()
	in.Length, in.Width = 0, 0

	got, err := Compute(in)
	require.NoError(t, err)
	assert.Zero(t, got.InsidePerimeter)
	assert.Zero(t, got.ECT)
	assert.True(t, got.IsDegenerate())
	assert.Positive(t, got.MaxCS, "load quantities are still reported")
}

func TestResult_NoRecommendationReason(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *Inputs)
		want   string
	}{
		{"recommendation", func(*Inputs) {}, ""},
		{"no section", func(in *Inputs) { in.Length, in.Width = 0, 0 }, "no perimeter"},
		{"no load", func(in *Inputs) { in.Weight, in.PalletWeight = 0, 0 }, "nothing bears"},
		{"single package", func(in *Inputs) {
			in.Layers, in.StorageStack, in.TransitStack = 1, 1, 1
		}, "nothing bears"},
		{"no load and no section", func(in *Inputs) {
			in.Weight, in.PalletWeight = 0, 0
			in.Length, in.Width = 0, 0
		}, "nothing bears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInputs()
			tt.modify(&in)
			got, err := Compute(in)
			require.NoError(t, err)

			reason := got.NoRecommendationReason()
			if tt.want == "" {
				assert.Empty(t, reason)
				return
			}
			assert.True(t, got.IsDegenerate())
			assert.Contains(t, reason, tt.want)
		})
	}
}

func TestCompute_GoverningCase(t *testing.T) {
	t.Run("transit governs reference case", func(t *testing.T) {
		got, err := Compute(DefaultInputs())
		require.NoError(t, err)
		assert.Less(t, got.CSStorage, got.CSTransit)
		assert.Equal(t, CaseTransit, got.Governing)
		assert.Equal(t, got.CSTransit, got.MaxCS)
	})

	t.Run("storage governs tall warehouse stacks", func(t *testing.T) {
		in := DefaultInputs()
		in.StorageStack = 5
		got, err := Compute(in)
		require.NoError(t, err)
		assert.Greater(t, got.CSStorage, got.CSTransit)
		assert.Equal(t, CaseStorage, got.Governing)
		assert.Equal(t, got.CSStorage, got.MaxCS)
	})

	t.Run("tie resolves to transit", func(t *testing.T) {
		in := DefaultInputs()
		in.Weight = 0
		in.StorageStack = 1
		in.TransitStack = 1
		got, err := Compute(in)
		require.NoError(t, err)
		assert.Equal(t, got.CSStorage, got.CSTransit)
		assert.Equal(t, CaseTransit, got.Governing)
	})
}

// TestCompute_TallStackDoesNotWrap checks that package counts far beyond any
// real pallet still scale the load instead of wrapping around.
func TestCompute_TallStackDoesNotWrap(t *testing.T) {
	in := DefaultInputs()
	in.Layers = 2
	in.StorageStack = math.MaxInt

	got, err := Compute(in)
	require.NoError(t, err)

	// 2*Ns*W for the packages above plus W_pallet/npl*(Ns-1) for the pallets.
	want := float64(math.MaxInt) * (2*in.Weight + in.PalletWeight/float64(in.PerLayer))
	assert.InEpsilon(t, want, got.SSpStorage, 1e-9)
	assert.Positive(t, got.CSStorage)
	assert.Equal(t, CaseStorage, got.Governing)
	assert.False(t, math.IsInf(got.ECT, 0))
	assert.Greater(t, got.ECT, 1e15)
}

func TestCompute_WeightMonotonic(t *testing.T) {
	prev, err := Compute(DefaultInputs())
	require.NoError(t, err)

	for _, w := range []float64{11.5, 12, 20, 35.75} {
		in := DefaultInputs()
		in.Weight = w
		got, computeErr := Compute(in)
		require.NoError(t, computeErr)

		assert.Greater(t, got.SSpStorage, prev.SSpStorage, "SSp_s at W=%v", w)
		assert.Greater(t, got.SSpTransit, prev.SSpTransit, "SSp_d at W=%v", w)
		assert.Greater(t, got.CSStorage, prev.CSStorage, "CS_s at W=%v", w)
		assert.Greater(t, got.CSTransit, prev.CSTransit, "CS_d at W=%v", w)
		assert.Greater(t, got.ECT, prev.ECT, "ECT at W=%v", w)
		prev = got
	}
}

// TestCompute_SeverityNeverLowersECTRequirement walks each handling table
// from least to most severe and checks the recommended ECT never goes down.
func TestCompute_SeverityNeverLowersECTRequirement(t *testing.T) {
	tests := []struct {
		name  string
		steps []func(*Inputs)
	}{
		{
			name: "stacking",
			steps: []func(*Inputs){
				func(in *Inputs) { in.Stacking = StackingColumn },
				func(in *Inputs) { in.Stacking = StackingInterlocking },
			},
		},
		{
			name: "gapped pallet",
			steps: []func(*Inputs){
				func(in *Inputs) { in.Gapped = GappedNo },
				func(in *Inputs) { in.Gapped = GappedYes },
			},
		},
		{
			name:  "overhang",
			steps: overhangSteps(),
		},
		{
			name:  "misalignment",
			steps: misalignmentSteps(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInputs()
			prevECT := 0.0
			for i, step := range tt.steps {
				step(&in)
				got, err := Compute(in)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got.ECT, prevECT, "step %d", i)
				prevECT = got.ECT
			}
		})
	}
}

func overhangSteps() []func(*Inputs) {
	var steps []func(*Inputs)
	for _, o := range OverhangOptions() {
		steps = append(steps, func(in *Inputs) { in.Overhang = o })
	}
	return steps
}

func misalignmentSteps() []func(*Inputs) {
	var steps []func(*Inputs)
	for _, m := range MisalignmentOptions() {
		steps = append(steps, func(in *Inputs) { in.Misalignment = m })
	}
	return steps
}

func TestCompute_UnknownOptions(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Inputs)
	}{
		{FieldFluteType, func(in *Inputs) { in.Flute = "E" }},
		{FieldRHStorage, func(in *Inputs) { in.RHStorage = 52 }},
		{FieldRHTransit, func(in *Inputs) { in.RHTransit = 95 }},
		{FieldDwellStorage, func(in *Inputs) { in.DwellStorage = "4d." }},
		{FieldDwellTransit, func(in *Inputs) { in.DwellTransit = "" }},
		{FieldStackingType, func(in *Inputs) { in.Stacking = "Pinwheel" }},
		{FieldOverhang, func(in *Inputs) { in.Overhang = "2in." }},
		{FieldGappedPallet, func(in *Inputs) { in.Gapped = "Maybe" }},
		{FieldMisalignment, func(in *Inputs) { in.Misalignment = "0.25in." }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			in := DefaultInputs()
			tt.mutate(&in)

			got, err := Compute(in)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrUnknownOption)
			assert.Equal(t, Result{}, got)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestCompute_ReportsEveryBadField(t *testing.T) {
	in := DefaultInputs()
	in.Flute = "Z"
	in.Overhang = "3in."
	in.Weight = -1

	_, err := Compute(in)
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)

	var fields []string
	for _, e := range joined.Unwrap() {
		var fe *FieldError
		require.ErrorAs(t, e, &fe)
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{FieldWeight, FieldFluteType, FieldOverhang}, fields)
}

func TestCompute_NumericValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Inputs)
		field   string
		wantErr error
	}{
		{"negative length", func(in *Inputs) { in.Length = -3 }, FieldLength, ErrNegativeValue},
		{"NaN width", func(in *Inputs) { in.Width = math.NaN() }, FieldWidth, ErrNonFiniteValue},
		{"infinite weight", func(in *Inputs) { in.Weight = math.Inf(1) }, FieldWeight, ErrNonFiniteValue},
		{"zero layers", func(in *Inputs) { in.Layers = 0 }, FieldLayers, ErrCountTooSmall},
		{"negative per layer", func(in *Inputs) { in.PerLayer = -1 }, FieldPerLayer, ErrNegativeValue},
		{"zero storage stack", func(in *Inputs) { in.StorageStack = 0 }, FieldStorageStack, ErrCountTooSmall},
		{"zero transit stack", func(in *Inputs) { in.TransitStack = 0 }, FieldTransitStack, ErrCountTooSmall},
		{"negative pallet", func(in *Inputs) { in.PalletWeight = -45 }, FieldPalletWeight, ErrNegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInputs()
			tt.mutate(&in)

			_, err := Compute(in)
			require.ErrorIs(t, err, tt.wantErr)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestCompute_ZeroMeasurementsAreNotErrors(t *testing.T) {
	in := DefaultInputs()
	in.Weight = 0
	in.PalletWeight = 0
	in.PerLayer = 0

	got, err := Compute(in)
	require.NoError(t, err)
	assert.Zero(t, got.SSpStorage)
	assert.Zero(t, got.SSpTransit)
	assert.Zero(t, got.ECT)
}

func TestFieldError(t *testing.T) {
	err := fieldErr(FieldOverhang, Overhang("9in."), ErrUnknownOption)

	assert.Equal(t, `overhang: unknown option "9in."`, err.Error())
	assert.True(t, errors.Is(err, ErrUnknownOption))
}
