/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/importer"
	"github.com/josephgoksu/tasknest/internal/task"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Long: `List every saved task, newest first.

The first time tasknest runs, the starter list is downloaded and saved before
anything is shown. Every later run reads only the local database.

Examples:
  tasknest list                 # All tasks
  tasknest list --search milk   # Tasks whose title or content contains "milk"
  tasknest list --watch         # Redraw whenever the database changes`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "s", "", "only show tasks whose title or content contains this text (case-sensitive)")
	listCmd.Flags().BoolP("watch", "w", false, "keep running and redraw when tasks change")
}

// loadOutcome is what the orchestrator delivered for one GetTasksList call.
type loadOutcome struct {
	tasks []task.Task
	err   *loadError
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	gate, err := openGate(store)
	if err != nil {
		return err
	}

	outcomes := make(chan loadOutcome, 1)
	orch, err := newOrchestrator(store, gate, remoteSource(), importer.Output{
		SendTasks: func(tasks []task.Task) {
			outcomes <- loadOutcome{tasks: tasks}
		},
		SendError: func(message, category string) {
			outcomes <- loadOutcome{err: &loadError{importer.Classified{Message: message, Category: category}}}
		},
	})
	if err != nil {
		return err
	}
	defer orch.Close()

	orch.GetTasksList(ctx)

	var got loadOutcome
	select {
	case got = <-outcomes:
	case <-ctx.Done():
		return ctx.Err()
	}
	if got.err != nil {
		return got.err
	}

	search, _ := cmd.Flags().GetString("search")
	if err := printTasks(cmd.OutOrStdout(), task.Filter(got.tasks, search)); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchTasks(ctx, cmd.OutOrStdout(), store, search)
	}
	return nil
}

func printTasks(w io.Writer, tasks []task.Task) error {
	if isJSON() {
		return printJSON(w, tasks)
	}
	_, err := fmt.Fprint(w, ui.RenderTaskList(tasks, ui.TerminalWidth()))
	return err
}

// reloadTasks lists and filters without going through the first-launch
// pipeline again.
func reloadTasks(ctx context.Context, store interface {
	ListTasks(context.Context) ([]task.Task, error)
}, search string) ([]task.Task, error) {
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return task.Filter(tasks, search), nil
}
