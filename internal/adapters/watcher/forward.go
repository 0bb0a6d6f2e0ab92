package watcher

import (
	"context"
	"os"
	"time"

	"go.trai.ch/tsmeta/internal/core/ports"
)

// Forward starts w on root and hands every changed file to onChange, debounced
// by window. Directory events are dropped. It blocks until ctx is done or the
// watcher stops, then flushes pending changes and stops the watcher.
func Forward(
	ctx context.Context,
	w ports.Watcher,
	root string,
	window time.Duration,
	onChange func(path string),
) error {
	if err := w.Start(ctx, root); err != nil {
		return err
	}

	debouncer := NewDebouncer(window, func(paths []string) {
		for _, p := range paths {
			onChange(p)
		}
	})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for event := range w.Events() {
			if isDirectory(event) {
				continue
			}
			debouncer.Add(event.Path)
		}
	}()

	select {
	case <-ctx.Done():
	case <-stopped:
	}

	err := w.Stop()
	<-stopped
	debouncer.Flush()
	return err
}

// isDirectory reports whether event concerns a directory that still exists.
// Removed and renamed paths cannot be inspected and are kept.
func isDirectory(event ports.WatchEvent) bool {
	if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
		return false
	}
	info, err := os.Stat(event.Path)
	return err == nil && info.IsDir()
}
