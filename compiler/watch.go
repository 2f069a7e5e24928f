package compiler

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/compiler/load"
)

// DefaultDebounce is the quiet period after a change before a watch
// re-runs the session. Editors write files in several steps.
const DefaultDebounce = 200 * time.Millisecond

// ReportFunc receives the outcome of every run of a watch.
type ReportFunc func(res *gen.Result, err error)

// Watch runs Generate over paths, then again every time a declaration file
// below them is written, created, renamed or removed, until ctx is done.
// Runs never overlap. Unchanged types are served from the session cache.
func (s *Session) Watch(ctx context.Context, paths []string, debounce time.Duration, report ReportFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "vogen: create watcher")
	}
	defer w.Close()
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "vogen: watch %s", dir)
		}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := s.log.Named("watch")
	run := func() {
		res, err := s.Generate(ctx, paths...)
		if ctx.Err() != nil {
			return
		}
		report(res, err)
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !load.IsDeclarationFile(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.Debug("change", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			run()
		}
	}
}
