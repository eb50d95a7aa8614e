package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/scenario"
)

func TestLoadFile_YAML(t *testing.T) {
	doc, err := scenario.LoadFile(filepath.Join("testdata", "warehouse.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", doc.Version)
	assert.Equal(t, []string{"reference", "tall-storage", "humid-transit"}, doc.Names())

	ref, err := doc.Lookup("reference")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultInputs(), ref.Inputs)

	tall, err := doc.Lookup("tall-storage")
	require.NoError(t, err)
	assert.Equal(t, 5, tall.Inputs.StorageStack)
	assert.Equal(t, 50.0, tall.Inputs.PalletWeight, "document defaults apply")

	humid, err := doc.Lookup("humid-transit")
	require.NoError(t, err)
	assert.Equal(t, engine.Humidity(90), humid.Inputs.RHTransit)
	assert.Equal(t, engine.Dwell60Days, humid.Inputs.DwellTransit)
	assert.Equal(t, engine.FluteBC, humid.Inputs.Flute)

	_, err = doc.Lookup("missing")
	require.ErrorIs(t, err, scenario.ErrNotFound)
}

func TestLoadFile_JSON(t *testing.T) {
	doc, err := scenario.LoadFile(filepath.Join("testdata", "warehouse.json"))
	require.NoError(t, err)
	require.Len(t, doc.Scenarios, 2)

	assert.Equal(t, engine.DefaultInputs(), doc.Scenarios[0].Inputs)
	assert.Equal(t, engine.StackingColumn, doc.Scenarios[1].Inputs.Stacking)
	assert.Equal(t, engine.GappedNo, doc.Scenarios[1].Inputs.Gapped)
}

func TestParse_WithoutBuiltinDefaults(t *testing.T) {
	const complete = `
version: 1.0.0
defaults:
  length_in: 12
  width_in: 10
  flute_type: C
  layers: 5
  per_layer: 6
  storage_stack: 2
  transit_stack: 1
  rh_storage: 50
  rh_transit: 50
  dwell_storage: 3d.
  dwell_transit: 30d.
  stacking_type: Column
  overhang: 0in.
  gapped_pallet: "No"
  misalignment: 0in.
scenarios:
`

	t.Run("every field supplied", func(t *testing.T) {
		doc, err := scenario.Parse([]byte(complete+`
  - name: light
    inputs:
      weight_lb: 8
      pallet_weight_lb: 40
`), scenario.FormatYAML)
		require.NoError(t, err)

		in := doc.Scenarios[0].Inputs
		assert.Equal(t, 12.0, in.Length)
		assert.Equal(t, 8.0, in.Weight)
		assert.Equal(t, 40.0, in.PalletWeight)
		_, err = engine.Compute(in)
		require.NoError(t, err)
	})

	t.Run("weights omitted", func(t *testing.T) {
		_, err := scenario.Parse([]byte(complete+`
  - name: unweighed
    inputs:
      storage_stack: 3
`), scenario.FormatYAML)
		require.ErrorIs(t, err, scenario.ErrMissingField)
		assert.Contains(t, err.Error(), `"unweighed"`)
		assert.Contains(t, err.Error(), "weight_lb, pallet_weight_lb")
		assert.NotContains(t, err.Error(), "length_in")
	})

	t.Run("one scenario short", func(t *testing.T) {
		_, err := scenario.Parse([]byte(complete+`
  - name: full
    inputs: {weight_lb: 8, pallet_weight_lb: 40}
  - name: short
    inputs: {weight_lb: 8}
`), scenario.FormatYAML)
		require.ErrorIs(t, err, scenario.ErrMissingField)
		assert.Contains(t, err.Error(), `scenario 2 ("short")`)
		assert.Contains(t, err.Error(), "pallet_weight_lb")
	})

	t.Run("json", func(t *testing.T) {
		_, err := scenario.Parse([]byte(`{"version":"1.0.0","scenarios":[{"name":"a","inputs":{"length_in":12}}]}`),
			scenario.FormatJSON)
		require.ErrorIs(t, err, scenario.ErrMissingField)
		assert.Contains(t, err.Error(), "per_layer")
	})

	t.Run("builtin defaults need nothing", func(t *testing.T) {
		doc, err := scenario.Parse([]byte("version: 1.0.0\nuse_builtin_defaults: true\nscenarios:\n  - name: a\n"),
			scenario.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultInputs(), doc.Scenarios[0].Inputs)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing version",
			doc:     "scenarios:\n  - name: a\n",
			wantErr: scenario.ErrMissingVersion,
		},
		{
			name:    "future major version",
			doc:     "version: 2.0.0\nscenarios:\n  - name: a\n",
			wantErr: scenario.ErrUnsupportedVersion,
		},
		{
			name:    "not semver",
			doc:     "version: latest\nscenarios:\n  - name: a\n",
			wantErr: scenario.ErrUnsupportedVersion,
		},
		{
			name:    "no scenarios",
			doc:     "version: 1.0.0\n",
			wantErr: scenario.ErrNoScenarios,
		},
		{
			name:    "empty name",
			doc:     "version: 1.0.0\nscenarios:\n  - name: '  '\n",
			wantErr: scenario.ErrEmptyName,
		},
		{
			name:    "duplicate name",
			doc:     "version: 1.0.0\nscenarios:\n  - name: a\n  - name: b\n  - name: a\n",
			wantErr: scenario.ErrDuplicateName,
		},
		{
			name:    "misspelled input",
			doc:     "version: 1.0.0\nscenarios:\n  - name: a\n    inputs:\n      lenght_in: 3\n",
			wantErr: scenario.ErrUnknownField,
		},
		{
			name:    "misspelled default",
			doc:     "version: 1.0.0\ndefaults:\n  colour: red\nscenarios:\n  - name: a\n",
			wantErr: scenario.ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.doc), scenario.FormatYAML)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_JSONUnknownField(t *testing.T) {
	_, err := scenario.Parse([]byte(`{"version":"1.0.0","scenarios":[{"name":"a","inputs":{"weight":3}}]}`),
		scenario.FormatJSON)
	require.ErrorIs(t, err, scenario.ErrUnknownField)
	assert.Contains(t, err.Error(), `"weight"`)
}

func TestParse_BadSyntax(t *testing.T) {
	_, err := scenario.Parse([]byte("version: [1"), scenario.FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")

	_, err = scenario.Parse([]byte("{"), scenario.FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON")
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]scenario.Format{
		"a.yaml": scenario.FormatYAML,
		"a.YML":  scenario.FormatYAML,
		"a.json": scenario.FormatJSON,
		"a.xlsx": scenario.FormatXLSX,
	} {
		got, err := scenario.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := scenario.FormatFromPath("a.csv")
	require.ErrorIs(t, err, scenario.ErrUnsupportedFormat)
}

func TestMarshalRoundTrip(t *testing.T) {
	doc, err := scenario.LoadFile(filepath.Join("testdata", "warehouse.yaml"))
	require.NoError(t, err)

	for _, format := range []scenario.Format{scenario.FormatYAML, scenario.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, marshalErr := scenario.Marshal(doc, format)
			require.NoError(t, marshalErr)

			path := filepath.Join(t.TempDir(), "doc."+string(format))
			require.NoError(t, os.WriteFile(path, data, 0o600))

			again, loadErr := scenario.LoadFile(path)
			require.NoError(t, loadErr)
			assert.Equal(t, doc.Scenarios, again.Scenarios)
		})
	}
}
