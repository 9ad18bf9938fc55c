/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/task"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a task's title or content",
	Long: `Change a task's title, content, or both. Fields you don't pass keep
their current value. Clearing the title saves "` + task.DefaultTitle + `".

Examples:
  tasknest edit 3 --title "Buy oat milk"
  tasknest edit 3 --content ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new content")
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
		return fmt.Errorf("nothing to change: pass --title and/or --content")
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	title, content := current.Title, current.Content
	if cmd.Flags().Changed("title") {
		title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("content") {
		content, _ = cmd.Flags().GetString("content")
	}

	updated, err := store.UpdateTask(ctx, task.SetContent(task.TitleOrDefault(title), content), id)
	if err != nil {
		return err
	}
	return printTask(cmd.OutOrStdout(), *updated)
}
