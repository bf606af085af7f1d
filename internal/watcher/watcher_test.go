package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the save watcher:
// - A burst of writes fires one debounced callback with the changed files
// - Non-matching file names are ignored
// - Stop is idempotent and safe before Start

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, files)
}

func (r *recorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) firstCall() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[0]
}

func TestSaveWatcher_DebouncedBurst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewSaveWatcher(dir, glob.MustCompile("*.sav"), 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	rec := &recorder{}
	require.NoError(t, w.Start(context.Background(), rec.record))

	// Simulate a save game's burst of writes.
	path := filepath.Join(dir, "world.sav")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return rec.callCount() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	assert.Equal(t, []string{"world.sav"}, rec.firstCall())

	// The burst collapsed into a single callback.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, rec.callCount())
}

func TestSaveWatcher_IgnoresNonMatchingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewSaveWatcher(dir, glob.MustCompile("*.sav"), 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	rec := &recorder{}
	require.NoError(t, w.Start(context.Background(), rec.record))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, rec.callCount())
}

func TestSaveWatcher_StopIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewSaveWatcher(dir, glob.MustCompile("*.sav"), 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background(), func([]string) {}))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestSaveWatcher_StopBeforeStart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewSaveWatcher(dir, glob.MustCompile("*.sav"), 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}

func TestSaveWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewSaveWatcher(filepath.Join(t.TempDir(), "nope"), glob.MustCompile("*.sav"), 50*time.Millisecond)
	assert.Error(t, err)
}
