package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"emblem/internal/trace"
)

// DefaultDebounce is how long Watcher waits for a burst of writes to settle.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports documents that change on disk.
type Watcher struct {
	fsw     *fsnotify.Watcher
	ext     string
	files   map[string]bool // явно переданные файлы
	batches int

	Debounce time.Duration
	// Heartbeat, when positive, is the interval of trace beats sent while
	// the watcher waits.
	Heartbeat time.Duration
}

// NewWatcher watches every directory under each root. Roots naming a file
// watch that file only.
func NewWatcher(roots []string, ext string) (*Watcher, error) {
	if ext == "" {
		ext = DocumentExt
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fsw: fsw, ext: ext, files: make(map[string]bool), Debounce: DefaultDebounce}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		if !info.IsDir() {
			w.files[filepath.Clean(root)] = true
			if err := fsw.Add(filepath.Dir(root)); err != nil {
				_ = fsw.Close()
				return nil, err
			}
			continue
		}
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if len(w.files) > 0 && w.files[path] {
		return true
	}
	return strings.HasSuffix(path, w.ext)
}

// Run delivers batches of changed documents to onChange until ctx is done.
// Paths in a batch are sorted and unique. onChange runs on the caller's
// goroutine, so batches never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var beat <-chan time.Time
	if w.Heartbeat > 0 {
		ticker := time.NewTicker(w.Heartbeat)
		defer ticker.Stop()
		beat = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						trace.Mark(ctx, trace.ScopeBatch, "watch-add-failed", err.Error())
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(w.Debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			clear(pending)
			sort.Strings(batch)
			w.batches++
			trace.Mark(ctx, trace.ScopeBatch, "watch-batch", strings.Join(batch, ","))
			onChange(batch)
		case <-beat:
			trace.Beat(ctx, "watch", w.status(len(pending)))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				trace.Mark(ctx, trace.ScopeBatch, "watch-overflow", err.Error())
				continue
			}
			return err
		}
	}
}

func (w *Watcher) status(pending int) string {
	return fmt.Sprintf("dirs=%d pending=%d batches=%d", len(w.fsw.WatchList()), pending, w.batches)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
