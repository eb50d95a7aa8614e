package scenario

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rshade/boxect/internal/logging"
)

// DefaultDebounce is how long Watch waits after the last change before reloading.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce collapses bursts of editor writes into one reload.
	// Zero means DefaultDebounce.
	Debounce time.Duration
	// OnError, if set, receives reload failures. The previous document stays current.
	OnError func(error)
}

// Watch monitors path and calls onChange with the newly loaded document each
// time the file is saved. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so editors that save
// by writing a temporary file and renaming it over path are seen. If a reload
// fails the error is logged and passed to OnError, and onChange is not called.
func Watch(ctx context.Context, path string, opts WatchOptions, onChange func(*Document)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).Str("component", "scenario").Str("path", target).Msg("watching for changes")

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			doc, loadErr := LoadFile(target)
			if loadErr != nil {
				log.Warn().Ctx(ctx).Str("component", "scenario").Err(loadErr).
					Msg("reload failed, keeping previous scenarios")
				if opts.OnError != nil {
					opts.OnError(loadErr)
				}
				continue
			}
			log.Debug().Ctx(ctx).Str("component", "scenario").
				Int("scenarios", len(doc.Scenarios)).Msg("scenarios reloaded")
			onChange(doc)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Ctx(ctx).Str("component", "scenario").Err(watchErr).Msg("watcher error")
		}
	}
}
