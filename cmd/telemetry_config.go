/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/tasknest/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage tasknest's anonymous telemetry settings.

Telemetry is off until you enable it. When on, tasknest sends command names,
durations and error categories. Task titles and content are never sent.
Setting DO_NOT_TRACK=1 always turns it off.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := telemetry.Load()
		if err != nil {
			return fmt.Errorf("failed to read telemetry status: %w", err)
		}

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"enabled":     state.IsEnabled(),
				"anonymousId": state.AnonymousID,
			})
		}

		out := cmd.OutOrStdout()
		if state.IsEnabled() {
			fmt.Fprintln(out, "Telemetry: enabled")
			fmt.Fprintf(out, "   Anonymous ID: %s\n", state.AnonymousID)
			if !state.UpdatedAt.IsZero() {
				fmt.Fprintf(out, "   Enabled on: %s\n", state.UpdatedAt.Format("2006-01-02"))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "   To disable: tasknest telemetry disable")
		} else {
			fmt.Fprintln(out, "Telemetry: disabled")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "   To enable: tasknest telemetry enable")
		}
		return nil
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(true); err != nil {
			return fmt.Errorf("failed to enable telemetry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Telemetry enabled. Thank you for helping improve tasknest!")
		return nil
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(false); err != nil {
			return fmt.Errorf("failed to disable telemetry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Telemetry disabled.")
		return nil
	},
}

func setTelemetry(enabled bool) error {
	state, err := telemetry.Load()
	if err != nil {
		return err
	}
	if enabled {
		state.Enable()
	} else {
		state.Disable()
	}
	return state.Save()
}

func init() {
	rootCmd.AddCommand(telemetryCmd)

	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryEnableCmd)
	telemetryCmd.AddCommand(telemetryDisableCmd)
}
