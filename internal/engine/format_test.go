package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      string
	}{
		{"thousands", 1234.567, 2, "1,234.57"},
		{"caliper", 0.1875, 4, "0.1875"},
		{"srf", 0.29663999999999996, 4, "0.2966"},
		{"millions", 2500000, 2, "2,500,000.00"},
		{"zero precision", 910.4, 0, "910"},
		{"negative", -1234.5, 1, "-1,234.5"},
		{"negative rounds to zero", -0.001, 2, "0.00"},
		{"NaN", math.NaN(), 2, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.value, tt.precision))
		})
	}
}

func TestResultLines(t *testing.T) {
	res, err := Compute(DefaultInputs())
	require.NoError(t, err)

	lines := res.Lines()
	require.Len(t, lines, 11)

	byKey := make(map[string]Line, len(lines))
	for _, l := range lines {
		byKey[l.Key] = l
	}
	assert.Equal(t, "51.75", byKey["inside_perimeter"].Text)
	assert.Equal(t, "0.1875", byKey["board_thickness"].Text)
	assert.Equal(t, "4.50", byKey["PWC_s"].Text)
	assert.Equal(t, "195.75", byKey["SSp_s"].Text)
	assert.Equal(t, "270.00", byKey["SSp_d"].Text)
	assert.Equal(t, "0.3264", byKey["SRF_s"].Text)
	assert.Equal(t, "0.2966", byKey["SRF_d"].Text)
	assert.Equal(t, "599.72", byKey["CS_s"].Text)
	assert.Equal(t, "910.19", byKey["CS_d"].Text)

	last := lines[len(lines)-1]
	assert.Equal(t, "ect", last.Key)
	assert.Equal(t, "49.78", last.Text)
	assert.Equal(t, "lb/in", last.Unit)
}

func TestResultSummary(t *testing.T) {
	res, err := Compute(DefaultInputs())
	require.NoError(t, err)
	assert.Equal(t, "Recommended minimum ECT 49.78 lb/in (Transit governs, CS 910.19 lb)", res.Summary())
	assert.Equal(t, "Case(unset)", Case("").String())
}
