package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files for changes and triggers debounced callbacks.
// All changes share one debounce timer, and callbacks run one at a time.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]*registration
	pending  map[*registration]string
	debounce time.Duration
	timer    *time.Timer
	// held while callbacks run so a slow callback never overlaps the next
	running sync.Mutex
	logger  *slog.Logger
}

// registration is one Watch call. A burst of changes to any of its files
// triggers its callback once.
type registration struct {
	callback func(string)
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]*registration),
		pending:  make(map[*registration]string),
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Watch starts watching the specified files.
// callback is called with the absolute path of the first file that changed
// in a burst; changes to several of the files only call it once.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a new file into place keep triggering events.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	reg := &registration{callback: callback}
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		fw.files[absPath] = reg
	}

	return nil
}

// Run handles file events until ctx is done or the watcher is closed
func (fw *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// Only trigger on write or create events
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.handleFileChange(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("watcher error", "error", err)
		}
	}
}

// handleFileChange records a change and restarts the shared debounce timer
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	filePath = filepath.Clean(filePath)
	reg, exists := fw.files[filePath]
	if !exists {
		return
	}

	if _, queued := fw.pending[reg]; !queued {
		fw.pending[reg] = filePath
	}

	fw.logger.Debug("file changed", "path", filePath)
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
}

// flush runs the callbacks of every registration changed since the last
// flush. Flushes are serialized: a flush that fires while callbacks are
// still running waits for them.
func (fw *FileWatcher) flush() {
	fw.running.Lock()
	defer fw.running.Unlock()

	fw.mu.Lock()
	pending := fw.pending
	fw.pending = make(map[*registration]string)
	fw.mu.Unlock()

	for reg, path := range pending {
		reg.callback(path)
	}
}

// Close stops pending callbacks and the watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.pending = make(map[*registration]string)
	fw.mu.Unlock()

	return fw.watcher.Close()
}
