package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ignoredOutputs are the files boxect writes into a project that should not
// be committed. The project config.yaml stays tracked.
//
//nolint:gochecknoglobals // Read-only list.
var ignoredOutputs = []string{"*.log", "*.pdf", "*.xlsx", "*.prom", ".env"}

// GitignoreContent returns the .gitignore written into a new project .boxect/ directory.
func GitignoreContent() string {
	content := "# boxect outputs; config.yaml is tracked\n"
	for _, pattern := range ignoredOutputs {
		content += pattern + "\n"
	}
	return content
}

// EnsureGitignore writes GitignoreContent to dir/.gitignore, creating dir
// if needed. An existing .gitignore is left alone and reported as false.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	switch _, err := os.Stat(path); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}
	//nolint:gosec // A .gitignore is meant to be readable by everyone.
	if err := os.WriteFile(path, []byte(GitignoreContent()), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
