package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/tasknest/internal/importer"
	"github.com/josephgoksu/tasknest/internal/storage"
	"github.com/josephgoksu/tasknest/internal/task"
)

func decodeTasks(t *testing.T, out string) []task.Task {
	t.Helper()
	var tasks []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks), "output: %s", out)
	return tasks
}

func TestListCmd_FirstLaunchImportsOnce(t *testing.T) {
	env := newTestEnv(t)
	_, hits := todoServer(t, http.StatusOK, "Water the plants", "Call mum", "Book dentist")

	out, _, err := env.run(t, "list", "--json")
	require.NoError(t, err)

	tasks := decodeTasks(t, out)
	require.Len(t, tasks, 3)
	assert.Equal(t, int32(1), hits.Load())

	byID := map[int64]task.Task{}
	for _, tk := range tasks {
		byID[tk.ID] = tk
	}
	assert.Equal(t, "Call mum", byID[2].Content)
	assert.True(t, byID[2].Completed)
	assert.Empty(t, byID[2].Title, "imported tasks have no title")

	// Second launch reads the local store only.
	out, _, err = env.run(t, "list", "--json")
	require.NoError(t, err)
	assert.Len(t, decodeTasks(t, out), 3)
	assert.Equal(t, int32(1), hits.Load())
}

func TestListCmd_Table(t *testing.T) {
	env := newTestEnv(t)
	todoServer(t, http.StatusOK, "Water the plants")

	out, _, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Water the plants")
	assert.Contains(t, out, task.DefaultTitle)
	assert.Contains(t, out, "1 task(s), 0 done")
}

func TestListCmd_RootRunsList(t *testing.T) {
	env := newTestEnv(t)
	todoServer(t, http.StatusOK)

	out, _, err := env.run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks yet")
	assert.Contains(t, out, "Add one with")
}

func TestListCmd_Search(t *testing.T) {
	env := newTestEnv(t)
	todoServer(t, http.StatusOK, "Buy milk", "buy bread", "Walk dog")

	out, _, err := env.run(t, "list", "--json", "--search", "Buy")
	require.NoError(t, err)

	tasks := decodeTasks(t, out)
	require.Len(t, tasks, 1, "search is case-sensitive")
	assert.Equal(t, "Buy milk", tasks[0].Content)
}

func TestListCmd_NetworkErrorIsNotRetried(t *testing.T) {
	env := newTestEnv(t)
	_, hits := todoServer(t, http.StatusInternalServerError, "ignored")

	_, _, err := env.run(t, "list")
	require.Error(t, err)

	c := classifyCommandError(err)
	assert.Equal(t, importer.CategoryNetwork, c.Category)
	assert.Equal(t, "The server rejected the request.", c.Message)

	// The first launch flag was consumed before the fetch.
	out, _, err := env.run(t, "list", "--json")
	require.NoError(t, err)
	assert.Empty(t, decodeTasks(t, out))
	assert.Equal(t, int32(1), hits.Load())
}

func TestListCmd_SQLiteLaunchBackend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("TASKNEST_LAUNCH_BACKEND", "sqlite")
	_, hits := todoServer(t, http.StatusOK, "one", "two")

	for range 2 {
		out, _, err := env.run(t, "list", "--json")
		require.NoError(t, err)
		assert.Len(t, decodeTasks(t, out), 2)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestListCmd_AtomicImport(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("TASKNEST_IMPORT_ATOMIC", "true")
	todoServer(t, http.StatusOK, "one", "two", "three")

	out, _, err := env.run(t, "list", "--json")
	require.NoError(t, err)
	assert.Len(t, decodeTasks(t, out), 3)
}

func TestWatchTasks_InMemoryRejected(t *testing.T) {
	store, err := storage.NewSQLiteStore(storage.InMemory)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = watchTasks(context.Background(), nil, store, "")
	assert.ErrorContains(t, err, "database file")
}
