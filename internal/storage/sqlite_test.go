package storage

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", DefaultFileName)

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)
}

func TestNewSQLiteStore_InMemory(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(InMemory)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.CreateTask(ctx, newTask(1, "27/01/25", "in memory")))
	got, err := store.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "in memory", got.Content)
}

func TestReopenKeepsTasks(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFileName)

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.CreateTask(ctx, newTask(9, "27/01/25", "survives")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetTask(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "survives", got.Content)
}

func TestSetOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFileName)

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)

	first, err := store.SetOnce(ctx, "launched")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.SetOnce(ctx, "launched")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := store.SetOnce(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other, "keys are independent")
	require.NoError(t, store.Close())

	// Simulated restart: the flag is durable.
	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	afterRestart, err := reopened.SetOnce(ctx, "launched")
	require.NoError(t, err)
	assert.False(t, afterRestart)

	require.NoError(t, reopened.ResetFlag(ctx, "launched"))
	afterReset, err := reopened.SetOnce(ctx, "launched")
	require.NoError(t, err)
	assert.True(t, afterReset)
}

func TestSetOnce_ConcurrentCallersWinOnce(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.SetOnce(ctx, "launched")
			if err != nil {
				t.Errorf("set once: %v", err)
				return
			}
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
