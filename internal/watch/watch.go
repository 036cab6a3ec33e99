// Package watch re-runs an action when files under a set of roots change.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc is the action re-run on change. Errors are logged, not fatal.
type RunFunc func(ctx context.Context) error

// Options configures Watch.
type Options struct {
	Roots      []string      // files or directories; directories are watched recursively
	Ignore     []string      // path prefixes whose events are dropped (e.g. the build dir)
	Debounce   time.Duration // quiet period before a run starts
	RunOnStart bool
	Logger     *slog.Logger
}

// Watch blocks until ctx is done. Runs are serialized: at most one is in flight
// and at most one more is queued behind it.
func Watch(ctx context.Context, opts Options, run RunFunc) error {
	if run == nil {
		return errors.New("watch: nil run func")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	ignore := make([]string, 0, len(opts.Ignore))
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignore = append(ignore, abs)
		}
	}
	for _, root := range opts.Roots {
		if err := addRecursive(w, root, ignore, log); err != nil {
			return err
		}
	}

	runReq, trigger, stop := newDebouncer(debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runWorker(ctx, runReq, run, log)
	}()
	defer wg.Wait()

	if opts.RunOnStart {
		runReq <- struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping watch")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name, ignore) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = addRecursive(w, ev.Name, ignore, log)
				}
			}
			log.Debug("File change detected", "path", ev.Name, "op", ev.Op.String())
			trigger()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

// newDebouncer returns a request channel with room for one queued run, and a
// trigger that fires into it after d of quiet.
func newDebouncer(d time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

func runWorker(ctx context.Context, req <-chan struct{}, run RunFunc, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			log.Info("Change detected; running")
			if err := run(ctx); err != nil {
				log.Warn("run failed", "error", err)
			}
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string, ignore []string, log *slog.Logger) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("watch root missing", "path", abs)
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(abs)
	}
	return filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if ignored(path, ignore) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			log.Warn("watch add failed", "dir", path, "error", err)
		}
		return nil
	})
}

// ignored drops events for ignored trees and editor noise.
func ignored(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
