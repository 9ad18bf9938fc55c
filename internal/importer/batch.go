package importer

import (
	"context"
	"sync"
	"time"

	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/task"
)

// TaskCreator is the store operation a batch needs.
type TaskCreator interface {
	CreateTask(ctx context.Context, n task.NewTask) error
}

// toNewTask converts an imported entry. The creation date is taken from now
// at the moment the write is issued.
func toNewTask(raw source.RawTask, now func() time.Time) task.NewTask {
	return task.NewTask{
		ID:           raw.ID,
		CreationDate: task.FormatDate(now()),
		Content:      raw.Todo,
		Completed:    raw.Completed,
	}
}

// CreateBatch writes every raw task concurrently and returns the first
// failure in completion order, or nil once all writes succeeded. It returns as
// soon as a failure is seen; the remaining writes still run to completion and
// their results are discarded. Writes that already committed are kept.
func CreateBatch(ctx context.Context, store TaskCreator, raw []source.RawTask, now func() time.Time) error {
	_, err := startBatch(ctx, store, raw, now)
	return err
}

// startBatch is CreateBatch that also returns a wait func. The wait func
// blocks until every write has finished, successful or not.
func startBatch(ctx context.Context, store TaskCreator, raw []source.RawTask, now func() time.Time) (func(), error) {
	if len(raw) == 0 {
		return func() {}, nil
	}
	if now == nil {
		now = time.Now
	}

	// Creates are not cancelled mid-flight once issued.
	writeCtx := context.WithoutCancel(ctx)

	results := make(chan error, len(raw))
	var wg sync.WaitGroup
	for _, r := range raw {
		wg.Add(1)
		n := toNewTask(r, now)
		go func() {
			defer wg.Done()
			results <- store.CreateTask(writeCtx, n)
		}()
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(results)
		close(allDone)
	}()
	wait := func() { <-allDone }

	// Single aggregator: only this loop reads results, so the first error
	// needs no extra lock.
	for err := range results {
		if err != nil {
			return wait, err
		}
	}
	return wait, nil
}
