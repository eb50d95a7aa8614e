package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine"
)

// makeProject creates dir/.boxect and returns it.
func makeProject(t *testing.T, dir string) string {
	t.Helper()
	projectDir := filepath.Join(dir, ".boxect")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	return projectDir
}

// isolateHome points BOXECT_HOME at an empty temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvBatchConcurrency, "")
	return home
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".boxect"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".boxect"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".boxect"), got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	want := makeProject(t, root)

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)
	assert.Equal(t, want, got)
}

func TestResolveProjectDir_NearestProjectWins(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	makeProject(t, root)
	inner := filepath.Join(root, "pallets")
	want := makeProject(t, inner)

	got := config.ResolveProjectDir(context.Background(), "", filepath.Join(inner))
	assert.Equal(t, want, got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "", t.TempDir())
	assert.Empty(t, got, "should return empty string when no project found")
}

func TestResolveProjectDir_FlagWithBoxectSuffix(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	got := config.ResolveProjectDir(context.Background(), "/my/project/.boxect", "")
	assert.Equal(t, "/my/project/.boxect", got)
}

func TestSetResolvedProjectDir_RoundTrip(t *testing.T) {
	orig := config.GetResolvedProjectDir()
	t.Cleanup(func() { config.SetResolvedProjectDir(orig) })

	config.SetResolvedProjectDir("/some/project/.boxect")
	assert.Equal(t, "/some/project/.boxect", config.GetResolvedProjectDir())

	config.SetResolvedProjectDir("")
	assert.Empty(t, config.GetResolvedProjectDir())
}

func TestNewWithProjectDir(t *testing.T) {
	ctx := context.Background()

	t.Run("project_overrides_and_inherits", func(t *testing.T) {
		home := isolateHome(t)
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`output:
  default_format: json
  precision: 4
batch:
  concurrency: 2
`), 0o600))

		projectDir := makeProject(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(`defaults:
  flute_type: BC
  storage_stack: 3
`), 0o600))

		cfg := config.NewWithProjectDir(ctx, projectDir)
		assert.Equal(t, "json", cfg.Output.DefaultFormat, "output comes from the global file")
		assert.Equal(t, 2, cfg.Batch.Concurrency)
		assert.Equal(t, engine.FluteBC, cfg.Defaults.Flute)
		assert.Equal(t, 3, cfg.Defaults.StorageStack)
		assert.Equal(t, 17.125, cfg.Defaults.Length, "unnamed preset fields keep built-in values")
	})

	t.Run("env_beats_project", func(t *testing.T) {
		isolateHome(t)
		t.Setenv(config.EnvOutputFormat, "yaml")

		projectDir := makeProject(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
			[]byte("output:\n  default_format: ndjson\n"), 0o600))

		cfg := config.NewWithProjectDir(ctx, projectDir)
		assert.Equal(t, "yaml", cfg.Output.DefaultFormat)
	})

	t.Run("missing_project_config", func(t *testing.T) {
		isolateHome(t)
		projectDir := makeProject(t, t.TempDir())

		assert.Equal(t, config.New().Output, config.NewWithProjectDir(ctx, projectDir).Output)
	})

	t.Run("corrupted_project_config_falls_back", func(t *testing.T) {
		isolateHome(t)
		projectDir := makeProject(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
			[]byte("output: [unclosed\n"), 0o600))

		cfg := config.NewWithProjectDir(ctx, projectDir)
		assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	})
}
