package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	defaults := engine.DefaultInputs()
	defaults.Weight = 20
	return &config.Config{
		Output: config.OutputConfig{
			DefaultFormat: "table",
			Precision:     2,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Defaults: defaults,
		Batch:    config.BatchConfig{Concurrency: 8},
	}
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
  precision: 4
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 4, target.Output.Precision)

	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, 8, target.Batch.Concurrency)
	assert.Equal(t, 20.0, target.Defaults.Weight)
}

func TestShallowMergeYAML_SectionsReplaceWholesale(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  level: debug
batch: {}
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "debug", target.Logging.Level)
	assert.Empty(t, target.Logging.Format, "fields absent from a present section are reset")
	assert.Zero(t, target.Batch.Concurrency)
}

func TestShallowMergeYAML_DefaultsStartFromBuiltins(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
defaults:
  overhang: ">1in."
  rh_transit: 85
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	want := engine.DefaultInputs()
	want.Overhang = engine.OverhangOver1
	want.RHTransit = 85
	assert.Equal(t, want, target.Defaults)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for name, content := range map[string]string{
		"empty":   "",
		"comment": "# nothing here\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newDefaultTarget()
			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, newDefaultTarget(), target)
		})
	}
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
output:
  default_format: yaml
  precision: 3
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "yaml", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("corrupted", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "output: [broken\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing overlay YAML")
	})

	t.Run("missing", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading overlay file")
	})

	t.Run("wrong type", func(t *testing.T) {
		target := newDefaultTarget()
		err := config.ShallowMergeYAML(target, writeOverlay(t, "output:\n  precision: 5\nbatch:\n  concurrency: many\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `applying overlay section "batch"`)
		assert.Equal(t, newDefaultTarget(), target, "a failed merge changes nothing")
	})

	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, config.ShallowMergeYAML(nil, "x"))
	})
}
