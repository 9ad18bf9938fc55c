/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/task"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to the list.

The task gets the next free id and today's date. A blank title is saved as
"` + task.DefaultTitle + `".

Examples:
  tasknest add "Buy milk"
  tasknest add "Buy milk" --content "two litres, semi-skimmed"
  tasknest add --content "no title, just a note"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().String("content", "", "task content")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var title string
	if len(args) > 0 {
		title = strings.TrimSpace(args[0])
	}
	content, _ := cmd.Flags().GetString("content")

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	saved, err := addTask(ctx, store, title, content, time.Now())
	if err != nil {
		return err
	}
	log.Debug("task added", "id", saved.ID)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), saved)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added task #%d: %s\n", ui.Icon("✓", ui.StyleSuccess), saved.ID, saved.DisplayTitle())
	return nil
}

// taskAdder is the part of the store add needs.
type taskAdder interface {
	NextID(ctx context.Context) (int64, error)
	CreateTask(ctx context.Context, n task.NewTask) error
	UpdateTask(ctx context.Context, change task.Change, id int64) (*task.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// addTask creates an untitled task and then gives it its title and content,
// the same two steps the edit flow uses. The steps are separate
// transactions, so a failed update deletes the row it just created.
func addTask(ctx context.Context, store taskAdder, title, content string, now time.Time) (*task.Task, error) {
	id, err := store.NextID(ctx)
	if err != nil {
		return nil, err
	}

	if err := store.CreateTask(ctx, task.NewTask{
		ID:           id,
		CreationDate: task.FormatDate(now),
	}); err != nil {
		return nil, err
	}

	saved, err := store.UpdateTask(ctx, task.SetContent(task.TitleOrDefault(title), content), id)
	if err != nil {
		if derr := store.DeleteTask(context.WithoutCancel(ctx), id); derr != nil {
			log.Warn("remove untitled task after failed update", "id", id, "error", derr)
		}
		return nil, err
	}
	return saved, nil
}
