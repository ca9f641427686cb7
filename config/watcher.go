package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/logger"
)

// Watcher reports changes to a set of files, typically the descriptor
// documents of a round and the configuration file.
//
// Parent directories are watched rather than the files themselves so that
// editors replacing a file on save are seen. Bursts of events are collapsed
// into one change after the debounce period, and changes are delivered at
// most once per minimum interval.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	limiter  *rate.Limiter
	logger   *zap.SugaredLogger
}

// ChangeFunc is called after watched files changed. Errors are logged and
// watching continues.
type ChangeFunc func(ctx context.Context) error

// NewWatcher watches paths. A minInterval of zero delivers every debounced
// change.
func NewWatcher(paths []string, debounce, minInterval time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool, len(paths)),
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   logger.ComponentLogger("watch"),
	}
	if minInterval > 0 {
		w.limiter = rate.NewLimiter(rate.Every(minInterval), 1)
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// Run delivers changes to onChange until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("Watched file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			if err := onChange(ctx); err != nil {
				w.logger.Warnw("Regeneration after change failed", logger.FieldError, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
