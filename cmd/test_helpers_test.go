package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/josephgoksu/tasknest/internal/config"
)

// testEnv isolates one test from the user's real config, data and telemetry.
type testEnv struct {
	home    string
	dataDir string
	stdin   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	orig := config.GetGlobalConfigDir
	config.GetGlobalConfigDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { config.GetGlobalConfigDir = orig })

	env := &testEnv{home: home, dataDir: filepath.Join(home, "data")}
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("DO_NOT_TRACK", "")
	t.Setenv("TASKNEST_DATA_DIR", env.dataDir)
	// Nothing should reach the real network unless a test points here.
	t.Setenv("TASKNEST_SOURCE_URL", "http://127.0.0.1:1/todos")
	return env
}

// run executes the root command with args and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd)
	cfgFile = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(e.stdin))
	if args == nil {
		// nil makes cobra fall back to os.Args.
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags puts every flag back to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// todoServer serves a fixed remote list and counts requests.
func todoServer(t *testing.T, status int, todos ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	items := make([]string, 0, len(todos))
	for i, todo := range todos {
		items = append(items, fmt.Sprintf(`{"id":%d,"todo":%q,"completed":%t,"userId":1}`, i+1, todo, i%2 == 1))
	}
	body := fmt.Sprintf(`{"todos":[%s],"total":%d,"skip":0,"limit":%d}`, strings.Join(items, ","), len(todos), len(todos))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("TASKNEST_SOURCE_URL", srv.URL+"/todos")
	return srv, &hits
}
