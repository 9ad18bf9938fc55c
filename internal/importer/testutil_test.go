package importer

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/storage"
	"github.com/josephgoksu/tasknest/internal/task"
)

func setupStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), storage.DefaultFileName))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func rawTasks(n int) []source.RawTask {
	out := make([]source.RawTask, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, source.RawTask{ID: int64(i + 1), Todo: "todo", UserID: 1})
	}
	return out
}

// stubSource counts fetches and can be held open until release is closed.
type stubSource struct {
	list    *source.RawImportList
	err     error
	release chan struct{}
	started chan struct{}
	calls   atomic.Int32
}

func (s *stubSource) Fetch(ctx context.Context) (*source.RawImportList, error) {
	s.calls.Add(1)
	if s.started != nil {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.list, s.err
}

// stubGate returns first once, like the real gate.
type stubGate struct {
	mu    sync.Mutex
	first bool
	err   error
}

func newStubGate(first bool) *stubGate { return &stubGate{first: first} }

func (g *stubGate) IsInitialLaunch(context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	f := g.first
	g.first = false
	return f, nil
}

// failingStore fails creates for chosen ids and counts calls.
type failingStore struct {
	*storage.SQLiteStore
	failIDs map[int64]error
	creates atomic.Int32
}

func (s *failingStore) CreateTask(ctx context.Context, n task.NewTask) error {
	s.creates.Add(1)
	if err, ok := s.failIDs[n.ID]; ok {
		return err
	}
	return s.SQLiteStore.CreateTask(ctx, n)
}

// recorder captures Output deliveries.
type recorder struct {
	mu     sync.Mutex
	tasks  [][]task.Task
	errors [][2]string
	got    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{got: make(chan struct{}, 16)}
}

func (r *recorder) output() Output {
	return Output{
		SendTasks: func(tasks []task.Task) {
			r.mu.Lock()
			r.tasks = append(r.tasks, tasks)
			r.mu.Unlock()
			r.got <- struct{}{}
		},
		SendError: func(message, category string) {
			r.mu.Lock()
			r.errors = append(r.errors, [2]string{message, category})
			r.mu.Unlock()
			r.got <- struct{}{}
		},
	}
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks), len(r.errors)
}

// blockingListStore counts ListTasks calls and holds each one until release
// is closed.
type blockingListStore struct {
	*storage.SQLiteStore
	release chan struct{}
	lists   atomic.Int32
}

func (s *blockingListStore) ListTasks(ctx context.Context) ([]task.Task, error) {
	s.lists.Add(1)
	<-s.release
	return s.SQLiteStore.ListTasks(ctx)
}
