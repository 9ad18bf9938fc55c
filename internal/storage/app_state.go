package storage

import (
	"context"
	"fmt"
	"time"
)

// SetOnce records key in app_state and reports whether this call was the one
// that created it. Concurrent callers (in this process or another one sharing
// the file) see true at most once.
func (s *SQLiteStore) SetOnce(ctx context.Context, key string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO app_state (key, value, updated_at)
		VALUES (?, '1', ?)
	`, key, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("set flag %q: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set flag %q: rows affected: %w", key, err)
	}
	return n == 1, nil
}

// ResetFlag removes key so the next SetOnce reports true again.
func (s *SQLiteStore) ResetFlag(ctx context.Context, key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("reset flag %q: %w", key, err)
	}
	return nil
}
