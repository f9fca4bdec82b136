package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit/pkg/logging"
)

func newWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(20*time.Millisecond), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

type recorder struct {
	mu      sync.Mutex
	batches [][]string
	ch      chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) fn(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.batches = append(r.batches, changed)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestSetFilesTracksDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "chapters")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	w := newWatcher(t)
	a := filepath.Join(dir, "main.aux")
	b := filepath.Join(sub, "ch1.aux")
	require.NoError(t, w.SetFiles([]string{a, b}))
	// Files is sorted: ".../chapters/ch1.aux" < ".../main.aux".
	assert.Equal(t, []string{b, a}, w.Files())
	assert.Len(t, w.dirs, 2)

	require.NoError(t, w.SetFiles([]string{a}))
	assert.Equal(t, []string{a}, w.Files())
	assert.Len(t, w.dirs, 1)
}

func TestRunDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.aux")
	other := filepath.Join(dir, "other.log")
	require.NoError(t, os.WriteFile(main, []byte("a"), 0o644))

	w := newWatcher(t)
	require.NoError(t, w.SetFiles([]string{main}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := newRecorder()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec.fn) }()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(main, []byte("b"), 0o644))
	}
	rec.wait(t)

	rec.mu.Lock()
	first := rec.batches[0]
	rec.mu.Unlock()
	assert.Equal(t, []string{main}, first)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunSeesReplacedFile(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.aux")
	require.NoError(t, os.WriteFile(main, []byte("a"), 0o644))

	w := newWatcher(t)
	require.NoError(t, w.SetFiles([]string{main}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := newRecorder()
	go func() { _ = w.Run(ctx, rec.fn) }()

	tmp := filepath.Join(dir, "main.aux.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0o644))
	require.NoError(t, os.Rename(tmp, main))
	rec.wait(t)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Contains(t, rec.batches[0], main)
}
