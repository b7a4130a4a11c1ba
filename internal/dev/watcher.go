package dev

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces filesystem event bursts into a single callback.
// Django's autoreloader and editors both touch several files per save.
const debounceWindow = 200 * time.Millisecond

// defaultIgnores are directory names never worth watching in a Django tree.
var defaultIgnores = []string{
	".git",
	".venv",
	"venv",
	"__pycache__",
	".mypy_cache",
	".pytest_cache",
	"node_modules",
	"staticfiles",
	"media",
}

// Watcher watches a project tree recursively and reports changed files after
// a debounce window. New subdirectories are added to the watch as they appear.
type Watcher struct {
	fsw     *fsnotify.Watcher
	root    string
	ignores []string
	onEvent func(file string)

	mu      sync.Mutex
	pending string
	timer   *time.Timer
	done    chan struct{}
}

// NewWatcher creates a recursive watcher for root. extraIgnores are glob
// patterns matched against paths relative to root, in addition to the
// built-in ignore list.
func NewWatcher(root string, extraIgnores []string, onEvent func(file string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		root:    root,
		ignores: extraIgnores,
		onEvent: onEvent,
		done:    make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, name := range defaultIgnores {
		if base == name {
			return true
		}
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.ignores {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// relevant filters events down to changes that should trigger a reload.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.ignored(ev.Name) {
		return false
	}
	base := filepath.Base(ev.Name)
	// Editor swap/backup files
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp") {
		return false
	}
	if strings.HasSuffix(base, ".pyc") {
		return false
	}
	return true
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addRecursive(ev.Name)
				}
			}

			w.schedule(ev.Name)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// schedule records the file and arms (or re-arms) the debounce timer.
func (w *Watcher) schedule(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = file
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		file := w.pending
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		w.onEvent(file)
	})
}
