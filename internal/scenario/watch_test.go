package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boxect/internal/scenario"
)

func writeDoc(t *testing.T, path, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(
		"version: 1.0.0\nuse_builtin_defaults: true\nscenarios:\n  - name: "+name+"\n"), 0o600))
}

func TestWatch_ReloadsAndKeepsLastGood(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	writeDoc(t, path, "first")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		names  []string
		errs   []error
		doneCh = make(chan error, 1)
	)
	go func() {
		doneCh <- scenario.Watch(ctx, path, scenario.WatchOptions{
			Debounce: 20 * time.Millisecond,
			OnError: func(err error) {
				mu.Lock()
				defer mu.Unlock()
				errs = append(errs, err)
			},
		}, func(doc *scenario.Document) {
			mu.Lock()
			defer mu.Unlock()
			names = append(names, doc.Names()...)
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeDoc(t, path, "second")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(names) > 0 && names[len(names)-1] == "second"
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("version: [broken"), 0o600))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(errs) > 0
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, "second", names[len(names)-1], "a failed reload does not replace the document")
	mu.Unlock()

	cancel()
	select {
	case err := <-doneCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	writeDoc(t, path, "only")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	go func() {
		_ = scenario.Watch(ctx, path, scenario.WatchOptions{Debounce: 10 * time.Millisecond},
			func(*scenario.Document) { calls <- struct{}{} })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600))

	select {
	case <-calls:
		t.Fatal("onChange called for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := scenario.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "s.yaml"),
		scenario.WatchOptions{}, func(*scenario.Document) {})
	require.Error(t, err)
}
