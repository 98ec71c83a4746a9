package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("## Доставка\nтекст"), 0644))

	var fired atomic.Int32
	w, err := New(path, func() { fired.Add(1) }, Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	require.NoError(t, os.WriteFile(path, []byte("## Доставка\nновый текст"), 0644))

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("текст"), 0644))

	var fired atomic.Int32
	w, err := New(path, func() { fired.Add(1) }, Options{Debounce: 30 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("текст"), 0644))

	var fired atomic.Int32
	w, err := New(path, func() { fired.Add(1) }, Options{Debounce: 150 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// A burst of writes inside the debounce window coalesces to one reload.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("текст"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "kb.txt"), func() {}, Options{})
	assert.Error(t, err)
}
