package responsive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a spec document on disk.
type FileWatcher struct {
	path string
}

// NewFileWatcher creates a FileWatcher for path.
func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{path: path}
}

// Watch emits the file contents immediately and again after every write.
//
// The parent directory is watched rather than the file, so editors that
// save by renaming a temporary file over the original are followed.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	path, err := filepath.Abs(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		send := func() bool {
			data, err := os.ReadFile(path)
			if err != nil {
				return true
			}
			select {
			case out <- data:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if !send() {
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

var _ Watcher = (*FileWatcher)(nil)
