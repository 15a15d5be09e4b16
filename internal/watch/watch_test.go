package watch

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

func TestRun_FiresOnChange(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Close()
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func() { fired.Add(1) })
	}()

	err = os.WriteFile(filepath.Join(dir, "app.py"), []byte("eval(x)\n"), 0644)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestRun_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Close()
	w.debounce = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	go w.Run(ctx, func() { fired.Add(1) })

	// A burst of writes inside one debounce window.
	for i := 0; i < 5; i++ {
		err = os.WriteFile(filepath.Join(dir, "app.py"), []byte("eval(x)\n"), 0644)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 10*time.Millisecond)

	// The burst collapses into a single run.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestRun_IgnoresExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	excluded := filepath.Join(dir, "node_modules")
	require.NoError(t, os.Mkdir(excluded, 0755))

	w, err := New(dir, []string{"node_modules"})
	require.NoError(t, err)
	defer w.Close()
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	go w.Run(ctx, func() { fired.Add(1) })

	err = os.WriteFile(filepath.Join(excluded, "dep.js"), []byte("x\n"), 0644)
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {})
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestNew_BadRoot(t *testing.T) {
	_, err := New("/nonexistent/path", nil)
	assert.Error(t, err)
}
