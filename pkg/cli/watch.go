package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ignition-tooling/ignition-lint/pkg/lint"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/spf13/cobra"
)

var watchLog = logger.New("cli:watch")

// debounceInterval batches the event bursts editors produce on save into a
// single re-run.
const debounceInterval = 300 * time.Millisecond

// watchProject runs an initial validation, then re-validates the project on
// every change to a view or script file until the context is canceled. The
// severity floor never stops the loop; each report is printed as it lands.
func watchProject(cmd *cobra.Command, runner *lint.Runner, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root); err != nil {
		return err
	}

	runOnce := func() {
		files, err := lint.DiscoverProject(root)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "discovery failed: %v\n", err)
			return
		}
		if err := emitReport(cmd, runner.Run(files), runner.SeverityFloor()); err != nil && err != ErrLintFailed {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		}
	}
	runOnce()

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case <-rerun:
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("Watcher error: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be watched before anything inside
			// them produces events.
			if event.Op.Has(fsnotify.Create) {
				if err := addRecursive(watcher, event.Name); err != nil {
					watchLog.Printf("Watching %s: %v", event.Name, err)
				}
			}
			if !isLintable(event.Name) {
				continue
			}
			watchLog.Printf("Change detected: %s (%s)", event.Name, event.Op)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		}
	}
}

func isLintable(path string) bool {
	return strings.HasSuffix(path, "view.json") || strings.HasSuffix(path, ".py")
}

// addRecursive watches path and every directory below it. Non-directory
// paths are ignored; fsnotify watches files through their parent.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
}
