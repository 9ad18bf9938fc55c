package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/tasknest/internal/config"
	"github.com/josephgoksu/tasknest/internal/importer"
	"github.com/josephgoksu/tasknest/internal/launch"
	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/storage"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func openStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(appCfg.DatabasePath())
}

// openGate returns the first-launch gate for the configured backend. The
// sqlite backend keeps the flag next to the tasks in store.
func openGate(store *storage.SQLiteStore) (*launch.Gate, error) {
	switch appCfg.Launch.Backend {
	case config.LaunchBackendFile:
		return launch.NewGate(launch.NewFileFlag(afero.NewOsFs(), appCfg.LaunchMarkerPath())), nil
	case config.LaunchBackendSQLite:
		return launch.NewGate(launch.NewStoreFlag(store)), nil
	default:
		return nil, fmt.Errorf("unknown launch backend %q", appCfg.Launch.Backend)
	}
}

func remoteSource() *source.HTTPSource {
	return source.NewHTTPSource(source.HTTPConfig{
		URL:     appCfg.Source.URL,
		Timeout: appCfg.Source.Timeout,
	})
}

func newOrchestrator(store *storage.SQLiteStore, gate *launch.Gate, src source.Source, out importer.Output) (*importer.Orchestrator, error) {
	return importer.New(importer.Config{
		Store:  store,
		Gate:   gate,
		Source: src,
		Output: out,
		Atomic: appCfg.Import.Atomic,
		Logger: log,
	})
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func confirmOrAbort(cmd *cobra.Command, prompt string) bool {
	if isJSON() {
		return true
	}
	cmd.Print(prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		cmd.Println("Cancelled.")
		return false
	}
	return true
}
