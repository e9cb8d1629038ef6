package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	reloaded := make(chan struct{}, 10)
	w := New([]string{dir}, 200*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		reloaded <- struct{}{}
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte{byte('a' + i)}, 0644))
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after changes")
	}
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_NewSubdirectoryAndErrors(t *testing.T) {
	dir := t.TempDir()

	reloaded := make(chan struct{}, 10)
	w := New([]string{dir, filepath.Join(dir, "missing")}, 50*time.Millisecond, func(ctx context.Context) error {
		reloaded <- struct{}{}
		return errors.New("duplicate slug")
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	sub := filepath.Join(dir, "guides")
	require.NoError(t, os.Mkdir(sub, 0755))
	<-reloaded

	// The new directory is watched and a failing reload does not stop the loop
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("b"), 0644))

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload for file in new subdirectory")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/c/.a.md.swp", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/c/a.md~", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, relevant(tt.event), tt.event.String())
	}
}
