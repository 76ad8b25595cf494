// Package watch reruns a documentation build when ontology sources change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/internal/config"
)

// DefaultDebounce is used when the configuration sets no delay.
const DefaultDebounce = 500 * time.Millisecond

// skipDirs are docs subdirectories holding generated output.
var skipDirs = map[string]bool{"classes": true, "diagrams": true}

// Watcher calls a build function once a burst of source changes settles.
type Watcher struct {
	dir      string
	sources  []string
	debounce time.Duration
	build    func(ctx context.Context) error
	fsw      *fsnotify.Watcher
}

// New watches the docs directory of cfg and its subdirectories.
func New(cfg *config.Config, build func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		dir:      cfg.DocsDir,
		sources:  cfg.Sources,
		debounce: cfg.Debounce,
		build:    build,
		fsw:      fsw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if err := w.addRecursive(w.dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.skipped(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			clog.Warningf("could not watch %s: %v", path, err)
		} else {
			if clog.V(2) {
				clog.Infof("watching %s", path)
			}
		}
		return nil
	})
}

func (w *Watcher) skipped(dir string) bool {
	base := filepath.Base(dir)
	if strings.HasPrefix(base, ".") {
		return true
	}
	rel, err := filepath.Rel(w.dir, dir)
	return err == nil && skipDirs[filepath.ToSlash(rel)]
}

// Relevant reports whether an event touches a source file.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.dir, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range w.sources {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling the build function after each
// burst of relevant changes. A failing build is logged and watching goes on.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	clog.Infof("watching %s for changes to %s", w.dir, strings.Join(w.sources, ", "))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && !w.skipped(ev.Name) {
					if err := w.addRecursive(ev.Name); err != nil {
						clog.Warningf("could not watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			if !w.Relevant(ev) {
				continue
			}
			if clog.V(2) {
				clog.Infof("change: %s", ev)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			clog.Errorf("watch error: %v", err)
		case <-fire:
			fire = nil
			clog.Infof("sources changed, regenerating")
			if err := w.build(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				clog.Errorf("regeneration failed: %v", err)
			}
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error { return w.fsw.Close() }
