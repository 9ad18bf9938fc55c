package launch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/tasknest/internal/storage"
)

func TestGate_FileFlag_TrueOnceThenFalse(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	path := "/data/" + MarkerFileName

	gate := NewGate(NewFileFlag(fs, path))

	first, err := gate.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := gate.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.False(t, second)

	// A new gate over the same filesystem models a process restart.
	restarted := NewGate(NewFileFlag(fs, path))
	afterRestart, err := restarted.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.False(t, afterRestart)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGate_FileFlag_Reset(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	gate := NewGate(NewFileFlag(fs, "/data/"+MarkerFileName))

	// Reset before anything was written is fine.
	require.NoError(t, gate.Reset(ctx))

	first, err := gate.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, gate.Reset(ctx))

	again, err := gate.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestGate_FileFlag_OSFilesystem(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", MarkerFileName)

	first, err := NewGate(NewFileFlag(afero.NewOsFs(), path)).IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := NewGate(NewFileFlag(afero.NewOsFs(), path)).IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestGate_FileFlag_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	gate := NewGate(NewFileFlag(fs, "/data/"+MarkerFileName))

	first, err := gate.IsInitialLaunch(context.Background())
	assert.Error(t, err)
	assert.False(t, first)
}

func TestGate_StoreFlag_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), storage.DefaultFileName)

	store, err := storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	gate := NewGate(NewStoreFlag(store))
	first, err := gate.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := gate.IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.False(t, second)
	require.NoError(t, store.Close())

	reopened, err := storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	afterRestart, err := NewGate(NewStoreFlag(reopened)).IsInitialLaunch(ctx)
	require.NoError(t, err)
	assert.False(t, afterRestart)
}

func TestGate_ConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(NewFileFlag(afero.NewMemMapFs(), "/data/"+MarkerFileName))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := gate.IsInitialLaunch(ctx)
			if err != nil {
				t.Errorf("is initial launch: %v", err)
				return
			}
			if first {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

type failingFlag struct{ err error }

func (f failingFlag) SetOnce(context.Context) (bool, error) { return false, f.err }
func (f failingFlag) Reset(context.Context) error          { return f.err }

func TestGate_PropagatesFlagErrors(t *testing.T) {
	boom := errors.New("disk full")
	gate := NewGate(failingFlag{err: boom})

	_, err := gate.IsInitialLaunch(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, gate.Reset(context.Background()), boom)
}
