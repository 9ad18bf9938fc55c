package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/josephgoksu/tasknest/internal/task"
)

const taskColumns = `id, title, content, creation_date, completed`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(sc rowScanner, extra ...any) (task.Task, error) {
	var t task.Task
	var title sql.NullString
	var completed int

	dest := append([]any{&t.ID, &title, &t.Content, &t.CreationDate, &completed}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return task.Task{}, err
	}
	if title.Valid {
		t.Title = title.String
	}
	t.Completed = completed != 0
	return t, nil
}

// txExecutor abstracts *sql.Tx for insertion so single and batch creates share it.
type txExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertTaskTx is the single place a task row gets written.
func insertTaskTx(ctx context.Context, tx txExecutor, n task.NewTask) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tasks (id, content, creation_date, completed)
		VALUES (?, ?, ?, ?)
	`, n.ID, n.Content, n.CreationDate, boolToInt(n.Completed))
	if err != nil {
		return fmt.Errorf("insert task %d: %w", n.ID, err)
	}
	return nil
}

// === Task CRUD ===

// CreateTask inserts a new task. Ids below zero are rejected before any write;
// any failure after the transaction starts rolls it back.
func (s *SQLiteStore) CreateTask(ctx context.Context, n task.NewTask) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCreation, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", ErrCreation, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertTaskTx(ctx, tx, n); err != nil {
		return fmt.Errorf("%w: %w", ErrCreation, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrCreation, err)
	}
	return nil
}

// CreateTasks inserts every task in one transaction: either all rows land or
// none do.
func (s *SQLiteStore) CreateTasks(ctx context.Context, batch []task.NewTask) error {
	for _, n := range batch {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrCreation, err)
		}
	}
	if len(batch) == 0 {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", ErrCreation, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, n := range batch {
		if err := insertTaskTx(ctx, tx, n); err != nil {
			return fmt.Errorf("%w: %w", ErrCreation, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch: %w", ErrCreation, err)
	}
	return nil
}

// GetTask returns the first task stored under id.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE id = ?
		ORDER BY rowid
		LIMIT 1
	`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query task %d: %w", ErrFetch, id, err)
	}
	return &t, nil
}

// ListTasks returns every task, newest creation date first and higher id
// first within a date. creation_date is compared as stored text.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		ORDER BY creation_date DESC, id DESC, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query tasks: %w", ErrFetch, err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan task: %w", ErrFetch, err)
		}
		tasks = append(tasks, t)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("%w: list tasks: %w", ErrFetch, err)
	}
	return tasks, nil
}

// UpdateTask applies change to the task stored under id and returns the
// updated record. CreationDate is never touched.
func (s *SQLiteStore) UpdateTask(ctx context.Context, change task.Change, id int64) (*task.Task, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %w", ErrUpdate, err)
	}
	defer func() { _ = tx.Rollback() }()

	var rowID int64
	row := tx.QueryRowContext(ctx, `
		SELECT `+taskColumns+`, rowid FROM tasks
		WHERE id = ?
		ORDER BY rowid
		LIMIT 1
	`, id)
	t, err := scanTask(row, &rowID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load task %d: %w", ErrUpdate, id, err)
	}

	switch change.Kind {
	case task.ChangeToggleCompletion:
		t.Completed = !t.Completed
	case task.ChangeContent:
		t.Title = change.Title
		t.Content = change.Content
	default:
		return nil, fmt.Errorf("%w: unsupported change %s", ErrUpdate, change.Kind)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE tasks SET title = ?, content = ?, completed = ?
		WHERE rowid = ?
	`, t.Title, t.Content, boolToInt(t.Completed), rowID); err != nil {
		return nil, fmt.Errorf("%w: write task %d: %w", ErrUpdate, id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrUpdate, err)
	}
	return &t, nil
}

// DeleteTask removes the task stored under id.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", ErrDelete, err)
	}
	defer func() { _ = tx.Rollback() }()

	var rowID int64
	err = tx.QueryRowContext(ctx, `SELECT rowid FROM tasks WHERE id = ? ORDER BY rowid LIMIT 1`, id).Scan(&rowID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: load task %d: %w", ErrDelete, id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE rowid = ?`, rowID); err != nil {
		return fmt.Errorf("%w: delete task %d: %w", ErrDelete, id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrDelete, err)
	}
	return nil
}

// DeleteAllTasks removes every task unconditionally.
func (s *SQLiteStore) DeleteAllTasks(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("%w: delete all: %w", ErrDelete, err)
	}
	return nil
}

// NextID returns one past the highest stored id, or 0 for an empty store.
func (s *SQLiteStore) NextID(ctx context.Context) (int64, error) {
	var next int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), -1) + 1 FROM tasks`).Scan(&next); err != nil {
		return 0, fmt.Errorf("%w: next id: %w", ErrFetch, err)
	}
	return next, nil
}
