/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/ui"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Long:  `Delete a task by its ID. A confirmation prompt is displayed unless --yes is given.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	t, err := store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !confirmOrAbort(cmd, ui.StyleWarning.Render(fmt.Sprintf("Delete task #%d %q?", t.ID, t.DisplayTitle()))+" [y/N] ") {
			return nil
		}
	}

	if err := store.DeleteTask(ctx, id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"deleted": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Task #%d deleted.\n", ui.Icon("✓", ui.StyleSuccess), id)
	return nil
}
