/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/task"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	t, err := store.GetTask(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printTask(cmd.OutOrStdout(), *t)
}

func printTask(w io.Writer, t task.Task) error {
	if isJSON() {
		return printJSON(w, t)
	}
	_, err := fmt.Fprint(w, ui.RenderTask(t, ui.TerminalWidth()))
	return err
}
