// Package watch rebuilds on source changes: it watches directory trees with
// fsnotify and calls a handler once a burst of changes has settled.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/logging"
)

// DefaultDebounce is how long the tree must stay quiet before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange after changes under its roots. Calls are made from a
// single goroutine, so OnChange never runs concurrently with itself.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	log      *zap.Logger

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New watches every directory under roots. Roots that do not exist are
// skipped with a log line.
func New(roots []string, debounce time.Duration, onChange func(), log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		onChange: onChange,
		log:      logging.OrNop(log),
		done:     make(chan struct{}),
	}

	for _, root := range roots {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			w.log.Info("directory not found, not watching", zap.String("dir", root))
			continue
		}
		w.log.Debug("setting up watch", zap.String("dir", root))
		w.addTree(root)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watched lists the directories currently watched.
func (w *Watcher) Watched() []string {
	return w.fsw.WatchList()
}

// Close stops watching. A pending rebuild is dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("error walking directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				w.log.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		w.log.Warn("error during directory walk", zap.String("root", root), zap.Error(err))
	}
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Info("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				w.log.Debug("new directory, adding to watcher", zap.String("dir", ev.Name))
				w.addTree(ev.Name)
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.onChange()
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
