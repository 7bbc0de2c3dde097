package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"adjconst-generator/internal/common"
)

const defaultDebounce = 100 * time.Millisecond

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Patterns select the watched files: doublestar globs or directories.
	Patterns []string
	// DebounceDelay is how long changes are collected before processing.
	DebounceDelay time.Duration
	// Logger for watch events.
	Logger *zap.Logger
}

// WatchEvent reports one processed change.
type WatchEvent struct {
	Path   string
	Result *FileResult
	Error  error
}

// Watcher rewrites matching files in place whenever they change. Its own
// writes are recognized by content hash and not processed again.
type Watcher struct {
	runner   *Runner
	patterns []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *zap.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string // path -> hash of the content last seen or written

	events chan WatchEvent
}

// NewWatcher creates a watcher for the configured patterns and starts
// watching their directories. Run must be called to release it.
func NewWatcher(runner *Runner, config WatcherConfig) (*Watcher, error) {
	if common.IsEmpty(config.Patterns) {
		return nil, fmt.Errorf("watch: no patterns")
	}

	patterns := make([]string, 0, len(config.Patterns))
	roots := make([]string, 0, len(config.Patterns))

	for _, pattern := range config.Patterns {
		pattern = filepath.Clean(pattern)

		if !containsGlob(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("watch pattern %q: %w", pattern, err)
			}

			if info.IsDir() {
				roots = append(roots, pattern)
				patterns = append(patterns, filepath.Join(pattern, filepath.FromSlash(SourcePattern)))

				continue
			}

			roots = append(roots, filepath.Dir(pattern))
			patterns = append(patterns, pattern)

			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("watch pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		roots = append(roots, filepath.FromSlash(base))
		patterns = append(patterns, pattern)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	debounce := config.DebounceDelay
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		runner:   runner,
		patterns: patterns,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan WatchEvent, 100),
	}

	for _, root := range roots {
		if err := w.addWatchesRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", root, err)
		}
	}

	return w, nil
}

// Events returns the channel of processed changes. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Matches reports whether path is selected by the watch patterns.
func (w *Watcher) Matches(path string) bool {
	path = filepath.Clean(path)

	for _, pattern := range w.patterns {
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
	}

	return false
}

// Run watches until ctx is done and releases the watcher afterwards. Files
// present when the watcher was created are only rewritten once they change.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer w.watcher.Close()

	w.logger.Info("file watcher started",
		zap.Strings("patterns", w.patterns),
		zap.Duration("debounce", w.debounce))

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("watcher error", zap.Error(err))

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			if w.Matches(path) {
				if data, err := os.ReadFile(path); err == nil {
					w.setHash(path, contentHash(data))
				}
			}

			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
		}

		return nil
	})
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(path); err != nil {
				w.logger.Warn("failed to watch new directory", zap.String("path", path), zap.Error(err))
			}

			return
		}
	}

	if !w.Matches(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("file change detected", zap.String("path", path), zap.Stringer("op", event.Op))
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		if ctx.Err() != nil {
			return
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			if _, err := os.Stat(path); err != nil {
				w.deleteHash(path)
				continue
			}
		}

		w.process(ctx, path)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	data, err := w.runner.ReadFile(ctx, path)
	if err != nil {
		w.deleteHash(path)
		w.send(WatchEvent{Path: path, Error: err})

		return
	}

	hash := contentHash(data)
	if old, ok := w.hash(path); ok && old == hash {
		return
	}

	res, err := w.runner.RewriteFile(ctx, path, path)

	switch {
	case err != nil || res.Content == nil:
		w.setHash(path, hash)
	default:
		w.setHash(path, contentHash(res.Content))
	}

	w.send(WatchEvent{Path: path, Result: res, Error: err})
}

func (w *Watcher) send(event WatchEvent) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("event channel full, dropping event", zap.String("path", event.Path))
	}
}

func (w *Watcher) hash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()

	h, ok := w.hashes[path]

	return h, ok
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()

	w.hashes[path] = hash
}

func (w *Watcher) deleteHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()

	delete(w.hashes, path)
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
