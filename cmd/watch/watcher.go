package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LegacyCodeHQ/codegraph/pyscan"
	"github.com/LegacyCodeHQ/codegraph/recorder"
)

const debounceInterval = 300 * time.Millisecond

func watchAndRescan(ctx context.Context, root string, opts *watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !handleEvent(watcher, event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				if err := rescan(root, opts); err != nil {
					fmt.Fprintf(os.Stderr, "rescan error: %v\n", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)
		}
	}
}

// rescan re-derives the event stream from scratch. The output is rewritten
// whole: incrementality lives in the host pipeline, not in the recording.
func rescan(root string, opts *watchOptions) error {
	roots := opts.filterRoots
	if len(roots) == 0 {
		roots = []string{root}
	}

	rec, err := recorder.New(recorder.Options{
		Output:      opts.output,
		FilterRoots: roots,
	})
	if err != nil {
		return err
	}
	defer rec.Close()

	return pyscan.Scan(root, rec)
}

// handleEvent wires newly created directories into the watcher before the
// relevance filter runs, so files added under them are picked up without a
// restart. It reports whether the event warrants a rescan.
func handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		addIfDirectory(watcher, event.Name)
	}
	return isRelevantChange(event)
}

func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Ext(event.Name) == ".py"
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if pyscan.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path)
	}
}
