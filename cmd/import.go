/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/importer"
	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/telemetry"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import tasks from a file or the remote list",
	Long: `Import tasks into the local database.

With --file, tasks are read from a JSON or YAML file shaped like the remote
list ({"todos": [{"id": 1, "todo": "...", "completed": false}]}). Without it,
the configured remote list is downloaded again. Imports never change the
first-launch flag.

Examples:
  tasknest import --file backup.json
  tasknest import --file todos.yaml --atomic
  tasknest import`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("file", "f", "", "read tasks from this JSON or YAML file")
	importCmd.Flags().Bool("atomic", false, "save all tasks in one transaction (overrides import.atomic)")
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		src    source.Source
		origin = "url"
	)
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		src = source.NewFileSource(afero.NewOsFs(), path)
		origin = "file"
	} else {
		src = remoteSource()
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

	if cmd.Flags().Changed("atomic") {
		appCfg.Import.Atomic, _ = cmd.Flags().GetBool("atomic")
	}
	orch, err := newOrchestrator(store, gate, src, importer.Output{})
	if err != nil {
		return err
	}
	defer orch.Close()

	start := time.Now()
	n, err := orch.Import(ctx, src)
	if err != nil {
		tracker.Track(telemetry.EventImportFailed, telemetry.FailureProps(cmd.Name(), importer.Classify(err).Category))
		return err
	}
	tracker.Track(telemetry.EventImportCompleted, telemetry.ImportProps(n, appCfg.Import.Atomic, origin, time.Since(start)))

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"imported": n, "origin": origin})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d task(s).\n", ui.Icon("✓", ui.StyleSuccess), n)
	return nil
}
