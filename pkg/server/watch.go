package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bastiangx/uniserve/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads the table when one of a set of files changes. Parent
// directories are watched so files created after startup are noticed too.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	reload   func() error
	debounce time.Duration
	logger   *log.Logger
}

// NewWatcher watches files and calls reload after they change. Files whose
// directory does not exist are ignored.
func NewWatcher(files []string, reload func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]bool, len(files)),
		reload:   reload,
		debounce: DefaultDebounce,
		logger:   logger.New("watch"),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	watched := 0
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.Debugf("Not watching %s: %v", dir, err)
			continue
		}
		watched++
	}
	w.logger.Debugf("Watching %d files in %d directories", len(w.files), watched)
	return w, nil
}

// Run handles events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("Override file changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnf("Watch error: %v", err)
		case <-fire:
			fire = nil
			if err := w.reload(); err != nil {
				w.logger.Warnf("Reload after change failed: %v", err)
				continue
			}
			w.logger.Info("Symbol table reloaded after override change")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
