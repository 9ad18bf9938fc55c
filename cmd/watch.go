package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/josephgoksu/tasknest/internal/storage"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// watchDebounce collapses the burst of writes sqlite makes per change.
const watchDebounce = 200 * time.Millisecond

// watchTasks redraws the list whenever the database file changes, until ctx
// is cancelled.
func watchTasks(ctx context.Context, w io.Writer, store *storage.SQLiteStore, search string) error {
	dbPath := store.Path()
	if dbPath == storage.InMemory {
		return errors.New("--watch needs a database file, not an in-memory database")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: sqlite writes to the -wal and -shm siblings and
	// may replace the main file.
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}
	log.Debug("watching database", "path", dbPath)

	base := filepath.Base(dbPath)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case <-timer.C:
			tasks, err := reloadTasks(ctx, store, search)
			if err != nil {
				return err
			}
			if !isJSON() {
				fmt.Fprintf(w, "\n%s\n", ui.StyleHeader.Render("updated "+time.Now().Format(time.TimeOnly)))
			}
			if err := printTasks(w, tasks); err != nil {
				return err
			}
		}
	}
}
