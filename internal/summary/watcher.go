package summary

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunCallback is called after every watcher-triggered run that succeeded.
type RunCallback func(Result)

// Watch starts an fsnotify watcher on root (the absolute path of the store
// root) and re-runs the synchronizer whenever documents are created,
// modified, removed or renamed. Bursts of events are coalesced over
// debounce. Watch returns nil once ctx is cancelled.
//
// Excluded directories are not watched. New directories created at runtime
// are added to the watch list. Events on the index file itself are ignored.
func (s *Synchronizer) Watch(ctx context.Context, root string, debounce time.Duration, cb RunCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := s.addDirsRecursive(w, root); err != nil {
		return err
	}

	s.logger.Info("watcher: started", slog.String("root", root))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			res, runErr := s.Run(ctx)
			if runErr != nil {
				if ctx.Err() != nil {
					continue
				}
				s.logger.Error("watcher: sync failed", slog.String("error", runErr.Error()))
				continue
			}
			if cb != nil {
				cb(res)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if s.handleEvent(w, root, ev) {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// handleEvent reports whether ev may change the index.
func (s *Synchronizer) handleEvent(w *fsnotify.Watcher, root string, ev fsnotify.Event) bool {
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)

	if ev.Op&fsnotify.Create != 0 {
		if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
			if s.opts.Exclusions.SkipDir(base) {
				return false
			}
			if addErr := s.addDirsRecursive(w, ev.Name); addErr != nil {
				s.logger.Warn("watcher: add new dir failed",
					slog.String("path", rel),
					slog.String("error", addErr.Error()))
			} else {
				s.logger.Debug("watcher: watching new dir", slog.String("path", rel))
			}
			return true
		}
	}

	if !strings.HasSuffix(base, s.opts.Extension) {
		// A removed or renamed directory takes its documents with it.
		// Temp files from index writes are hidden and never count.
		return ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && !s.opts.Exclusions.SkipDir(base)
	}

	if rel == s.opts.IndexFile || s.opts.Exclusions.SkipFile(base) {
		return false
	}

	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	s.logger.Debug("watcher: change", slog.String("path", rel), slog.String("op", ev.Op.String()))
	return true
}

// addDirsRecursive adds dir and all its non-excluded subdirectories to the
// watcher.
func (s *Synchronizer) addDirsRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			s.logger.Warn("watcher: cannot scan directory", slog.String("path", p), slog.String("error", err.Error()))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && s.opts.Exclusions.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
