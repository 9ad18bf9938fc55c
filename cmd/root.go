/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/tasknest/internal/config"
	"github.com/josephgoksu/tasknest/internal/logger"
	"github.com/josephgoksu/tasknest/internal/telemetry"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOutput switches every command to JSON output.
	jsonOutput bool
	// version is the application version.
	version = "0.1.0"
)

// Set by initApp before any command runs.
var (
	appCfg  *config.AppConfig
	log     = slog.Default()
	tracker telemetry.Client = telemetry.NewNoopClient()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tasknest",
	Short: "tasknest keeps your to-do list on this machine.",
	Long: `tasknest is a local to-do list for the command line.

On the very first launch it downloads a starter list of tasks. After that
everything lives in a local database: add, edit, toggle and delete tasks
without ever touching the network again.

Run without a command to show your tasks.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runList,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	cmd, err := rootCmd.ExecuteContextC(ctx)
	trackCommand(cmd, err, time.Since(start))
	if cerr := tracker.Close(); cerr != nil {
		LogError("flush telemetry", cerr)
	}

	if err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = initApp

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.tasknest/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

// initApp loads configuration and sets up logging, crash context and
// telemetry for the command about to run.
func initApp(cmd *cobra.Command, args []string) error {
	// viper.Reset drops bindings, so bind on every run.
	flags := cmd.Root().PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("json", flags.Lookup("json"))

	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	appCfg = cfg

	log = logger.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSON)
	slog.SetDefault(log)

	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath(), args)
	logger.SetDataDir(cfg.Data.Dir)
	logger.SetDatabase(cfg.DatabasePath())

	tracker = newTracker(cfg)
	log.Debug("config loaded", "file", cfg.Config, "database", cfg.DatabasePath(), "launch_backend", cfg.Launch.Backend)
	return nil
}

func newTracker(cfg *config.AppConfig) telemetry.Client {
	state, err := telemetry.Load()
	if err != nil {
		LogError("load telemetry state", err)
		return telemetry.NewNoopClient()
	}

	client, err := telemetry.New(telemetry.ClientConfig{
		APIKey:   cfg.Telemetry.APIKey,
		Endpoint: cfg.Telemetry.Endpoint,
		Version:  version,
		State:    state,
		Allowed:  cfg.Telemetry.Enabled,
	})
	if err != nil {
		LogError("start telemetry", err)
		return telemetry.NewNoopClient()
	}
	return client
}

func trackCommand(cmd *cobra.Command, err error, d time.Duration) {
	if cmd == nil {
		return
	}
	if err != nil {
		tracker.Track(telemetry.EventCommandError, telemetry.FailureProps(cmd.Name(), classifyCommandError(err).Category))
		return
	}
	tracker.Track(telemetry.EventCommandExecuted, telemetry.CommandProps(cmd.Name(), d))
}
