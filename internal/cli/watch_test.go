package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjconst-generator/internal/metrics"
)

const watchTimeout = 5 * time.Second

func startWatcher(t *testing.T, patterns ...string) (*Watcher, func()) {
	t.Helper()

	w, err := NewWatcher(newTestRunner(), WatcherConfig{
		Patterns:      patterns,
		DebounceDelay: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	return w, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func nextEvent(t *testing.T, w *Watcher) WatchEvent {
	t.Helper()

	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for watch event")
		return WatchEvent{}
	}
}

// placeSource writes content next to path and renames it into place so the
// watcher sees the complete file at once.
func placeSource(t *testing.T, path, content string) {
	t.Helper()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatcher_Matches(t *testing.T) {
	dir := t.TempDir()

	w, stop := startWatcher(t, filepath.Join(dir, "**", "*Const.cs"))
	defer stop()

	assert.True(t, w.Matches(filepath.Join(dir, "CasinoConst.cs")))
	assert.True(t, w.Matches(filepath.Join(dir, "a", "b", "CasinoConst.cs")))
	assert.False(t, w.Matches(filepath.Join(dir, "Casino.cs")))
}

func TestWatcher_RewritesChangedFile(t *testing.T) {
	dir := t.TempDir()
	existing := writeSource(t, dir, "ExistingConst.cs", constSource)

	w, stop := startWatcher(t, dir)
	defer stop()

	path := filepath.Join(dir, "CasinoConst.cs")
	placeSource(t, path, constSource)

	ev := nextEvent(t, w)
	require.NoError(t, ev.Error)
	assert.Equal(t, path, ev.Path)
	require.NotNil(t, ev.Result)
	assert.Equal(t, metrics.OutcomeWritten, ev.Result.Outcome)
	assert.Contains(t, readSource(t, path), "#if EDIT_CONST")

	// The watcher's own write must not trigger another rewrite.
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}

	assert.Equal(t, constSource, readSource(t, existing))
}

func TestWatcher_FatalFileIsReported(t *testing.T) {
	dir := t.TempDir()

	w, stop := startWatcher(t, dir)
	defer stop()

	path := filepath.Join(dir, "BrokenConst.cs")
	placeSource(t, path, fatalSource)

	ev := nextEvent(t, w)
	require.Error(t, ev.Error)
	assert.Equal(t, metrics.OutcomeFatal, ev.Result.Outcome)
	assert.Equal(t, fatalSource, readSource(t, path))
}

func TestNewWatcher_Errors(t *testing.T) {
	_, err := NewWatcher(newTestRunner(), WatcherConfig{})
	require.Error(t, err)

	_, err = NewWatcher(newTestRunner(), WatcherConfig{Patterns: []string{filepath.Join(t.TempDir(), "missing")}})
	require.Error(t, err)
}
