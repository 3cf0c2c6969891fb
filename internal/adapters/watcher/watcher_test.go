package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/comfortmap/internal/adapters/watcher"
	"go.trai.ch/comfortmap/internal/core/domain"
)

func startWatch(t *testing.T, root string) (*batchRecorder, context.CancelFunc, <-chan error) {
	t.Helper()
	rec := &batchRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	w := watcher.NewWatcher(nil, 20*time.Millisecond)
	go func() {
		done <- w.Watch(ctx, root, rec.record)
	}()

	// Give fsnotify time to register the tree.
	time.Sleep(100 * time.Millisecond)
	return rec, cancel, done
}

func changed(rec *batchRecorder, path string) func() bool {
	return func() bool {
		for _, batch := range rec.get() {
			if slices.Contains(batch, path) {
				return true
			}
		}
		return false
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	sim := filepath.Join(root, "sim")
	require.NoError(t, os.MkdirAll(sim, domain.DirPerm))

	rec, cancel, done := startWatch(t, root)

	sql := filepath.Join(sim, "eplusout.sql")
	require.NoError(t, os.WriteFile(sql, []byte("v1"), domain.FilePerm))
	require.Eventually(t, changed(rec, sql), 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	rec, cancel, done := startWatch(t, root)
	defer func() {
		cancel()
		<-done
	}()

	nested := filepath.Join(root, "runs", "office")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	time.Sleep(100 * time.Millisecond)

	csv := filepath.Join(nested, "condition.csv")
	require.NoError(t, os.WriteFile(csv, []byte("1,2"), domain.FilePerm))
	require.Eventually(t, changed(rec, csv), 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresMetaDirectory(t *testing.T) {
	root := t.TempDir()
	receipts := filepath.Join(root, domain.MetaDirName, domain.ReceiptsDirName)
	require.NoError(t, os.MkdirAll(receipts, domain.DirPerm))

	rec, cancel, done := startWatch(t, root)
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, os.WriteFile(filepath.Join(receipts, "r.json"), []byte("{}"), domain.FilePerm))
	marker := filepath.Join(root, "marker.txt")
	require.NoError(t, os.WriteFile(marker, []byte("x"), domain.FilePerm))
	require.Eventually(t, changed(rec, marker), 2*time.Second, 10*time.Millisecond)

	for _, batch := range rec.get() {
		for _, path := range batch {
			assert.NotContains(t, path, domain.MetaDirName)
		}
	}
}

func TestWatcher_KeepsWatchingDuringLongRounds(t *testing.T) {
	root := t.TempDir()

	var (
		mu       sync.Mutex
		batches  [][]string
		active   atomic.Int32
		overlaps atomic.Int32
	)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	onChange := func(paths []string) {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		defer active.Add(-1)

		mu.Lock()
		batches = append(batches, paths)
		mu.Unlock()

		once.Do(func() {
			close(started)
			<-release
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.NewWatcher(nil, 20*time.Millisecond).Watch(ctx, root, onChange)
	}()
	defer func() {
		cancel()
		<-done
	}()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), domain.FilePerm))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first round never started")
	}

	// The first round is still running. A directory created now must be
	// watched before the round ends.
	nested := filepath.Join(root, "runs")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	time.Sleep(100 * time.Millisecond)
	csv := filepath.Join(nested, "condition.csv")
	require.NoError(t, os.WriteFile(csv, []byte("1,2"), domain.FilePerm))
	time.Sleep(100 * time.Millisecond)
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, batch := range batches[1:] {
			if slices.Contains(batch, csv) {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, overlaps.Load())
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := watcher.NewWatcher(nil, time.Millisecond)
	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func([]string) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWatchFailed)
}
