package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/boxect/internal/logging"
)

// projectDirName is the per-project configuration directory.
const projectDirName = ".boxect"

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .boxect directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. BOXECT_PROJECT_DIR env var
//  3. the nearest ancestor of startDir that already has a .boxect directory
//
// Returns the path to $PROJECT/.boxect/ or empty string if no project found.
// Does NOT create the directory. Returned path is always absolute (or empty).
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsBoxectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsBoxectDir(ctx, envDir)
	}

	root, ok := findProjectRoot(startDir)
	if !ok {
		return ""
	}
	return toAbsBoxectDir(ctx, root)
}

// findProjectRoot walks up from startDir looking for a directory containing
// .boxect/. The global config directory under $HOME does not count.
func findProjectRoot(startDir string) (string, bool) {
	if startDir == "" {
		return "", false
	}
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	globalDir, _ := GetConfigDir()

	for {
		candidate := filepath.Join(current, projectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != globalDir {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error; use global defaults.
		return cfg
	}

	cfgCopy := New()
	if err := ShallowMergeYAML(cfgCopy, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}

	// Environment overrides still win over the project file.
	cfgCopy.applyEnv()
	return cfgCopy
}

// toAbsBoxectDir converts dir to an absolute path and appends ".boxect".
// If the path already ends with ".boxect", it is returned as-is (after
// resolving to an absolute path) to prevent double-append.
func toAbsBoxectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
