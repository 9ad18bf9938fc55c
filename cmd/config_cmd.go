/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/tasknest/internal/config"
	"github.com/josephgoksu/tasknest/internal/logger"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tasknest configuration",
	Long: `View and manage tasknest configuration settings.

Settings are read, lowest priority first, from built-in defaults, the config
file, a .env file, TASKNEST_* environment variables and command-line flags.
For example TASKNEST_SOURCE_URL overrides source.url.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings := make(map[string]any, len(config.Keys))
		for _, key := range config.Keys {
			settings[key] = displayValue(key, viper.Get(key))
		}

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"file":     appCfg.Config,
				"database": appCfg.DatabasePath(),
				"settings": settings,
			})
		}

		out := cmd.OutOrStdout()
		file := appCfg.Config
		if file == "" {
			file = "(none)"
		}
		fmt.Fprintf(out, "%s %s\n", ui.StyleSubtle.Render("config file:"), file)
		fmt.Fprintf(out, "%s %s\n", ui.StyleSubtle.Render("database:   "), appCfg.DatabasePath())
		crashes, _ := logger.ListCrashLogs()
		fmt.Fprintf(out, "%s %s (%d)\n\n", ui.StyleSubtle.Render("crash logs: "), appCfg.CrashLogDir(), len(crashes))

		keys := slices.Clone(config.Keys)
		slices.Sort(keys)
		for _, key := range keys {
			fmt.Fprintf(out, "%s = %v\n", ui.StylePrimary.Render(key), settings[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting to the config file",
	Long: `Save a setting to the config file (--config, or ~/.tasknest/config.yaml).

Keys: ` + strings.Join(config.Keys, ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := config.GlobalConfigPath()
			if err != nil {
				return fmt.Errorf("locate config file: %w", err)
			}
			path = p
		}

		if err := config.SaveSetting(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s in %s\n", args[0], path)
		return nil
	},
}

// displayValue hides secrets when printing settings.
func displayValue(key string, v any) any {
	if key != "telemetry.apiKey" {
		return v
	}
	s, _ := v.(string)
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
