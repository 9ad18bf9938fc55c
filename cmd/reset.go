/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/ui"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every task and forget the first launch",
	Long: `Delete every saved task and clear the first-launch flag, so the next
'tasknest list' downloads the starter list again.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !confirmOrAbort(cmd, ui.StyleWarning.Render("Delete ALL tasks and reset the first launch?")+" [y/N] ") {
			return nil
		}
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	gate, err := openGate(store)
	if err != nil {
		return err
	}

	if err := store.DeleteAllTasks(ctx); err != nil {
		return err
	}
	if err := gate.Reset(ctx); err != nil {
		return fmt.Errorf("reset first launch flag: %w", err)
	}
	log.Info("store reset", "database", store.Path())

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]bool{"reset": true})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All tasks deleted. The starter list will be downloaded on the next launch.")
	return nil
}
