package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

func createTempLog(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func updateLog(t *testing.T, path string, content string) {
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
}

func fastConfig(intervalMs, settleMs int) entities.WatcherConfig {
	return entities.WatcherConfig{IntervalMs: intervalMs, DebounceMs: settleMs}
}

func TestLogPoller(t *testing.T) {
	t.Run("uses configured durations", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(100, 500), nil)
		assert.Equal(t, 100*time.Millisecond, poller.interval)
		assert.Equal(t, 500*time.Millisecond, poller.settle)
	})

	t.Run("defaults", func(t *testing.T) {
		poller := NewLogPoller(entities.WatcherConfig{}, nil)
		assert.Equal(t, 500*time.Millisecond, poller.interval)
		assert.Equal(t, 500*time.Millisecond, poller.settle)
	})

	t.Run("reports a modified log", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(50, 50), nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer func() { _ = poller.Stop() }()

		path := createTempLog(t, "Hit rate: 10.0%\n")

		events, err := poller.Watch(ctx, path)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)
		updateLog(t, path, "Hit rate: 10.0%\nHit rate: 20.0%\n")

		select {
		case event := <-events:
			assert.Equal(t, path, event.Path)
			assert.Equal(t, ports.Modified, event.Type)
			assert.WithinDuration(t, time.Now(), event.Timestamp, 2*time.Second)
		case <-time.After(2 * time.Second):
			t.Fatal("no event received")
		}
	})

	t.Run("a log being written is reported once it settles", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(50, 200), nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer func() { _ = poller.Stop() }()

		path := createTempLog(t, "initial")

		events, err := poller.Watch(ctx, path)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		for i := 0; i < 3; i++ {
			updateLog(t, path, fmt.Sprintf("run %d", i))
			time.Sleep(60 * time.Millisecond)
		}

		select {
		case event := <-events:
			assert.Equal(t, ports.Modified, event.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("no event received")
		}

		select {
		case <-events:
			t.Fatal("got unexpected second event")
		case <-time.After(400 * time.Millisecond):
		}
	})

	t.Run("rewrite with identical content is ignored", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(50, 50), nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer func() { _ = poller.Stop() }()

		path := createTempLog(t, "same")

		events, err := poller.Watch(ctx, path)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)
		updateLog(t, path, "same")

		select {
		case <-events:
			t.Fatal("identical content reported as a change")
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("deleted log", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(50, 100), nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer func() { _ = poller.Stop() }()

		path := createTempLog(t, "content")

		events, err := poller.Watch(ctx, path)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.Remove(path))

		select {
		case event := <-events:
			assert.Equal(t, path, event.Path)
			assert.Equal(t, ports.Deleted, event.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("no event received for deletion")
		}

		select {
		case <-events:
			t.Fatal("deletion reported twice")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("stop closes the channel", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(50, 100), nil)
		path := createTempLog(t, "content")

		events, err := poller.Watch(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, poller.Stop())

		_, ok := <-events
		assert.False(t, ok)

		assert.NoError(t, poller.Stop())
	})

	t.Run("missing log", func(t *testing.T) {
		poller := NewLogPoller(fastConfig(50, 100), nil)

		_, err := poller.Watch(context.Background(), "/nonexistent/path/run.log")
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrIO))
		assert.Contains(t, err.Error(), "initial scan")
	})
}

func TestChecksumFile(t *testing.T) {
	path := createTempLog(t, "test content")

	first, err := checksumFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := checksumFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	updateLog(t, path, "different content")
	third, err := checksumFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)

	_, err = checksumFile("/nonexistent/file")
	assert.Error(t, err)
}
