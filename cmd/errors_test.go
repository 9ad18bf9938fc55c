package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestPrintError(t *testing.T) {
	// Save original stderr
	originalStderr := os.Stderr

	tests := []struct {
		name         string
		userMsg      string
		technicalErr error
		verbose      bool
		expectedOut  string
	}{
		{
			name:         "normal mode with error",
			userMsg:      "Could not load tasks.",
			technicalErr: nil,
			verbose:      false,
			expectedOut:  "Could not load tasks.",
		},
		{
			name:         "verbose mode with error",
			userMsg:      "Could not load tasks.",
			technicalErr: &testError{msg: "fetch tasks failed: database is locked"},
			verbose:      true,
			expectedOut:  "Error: fetch tasks failed: database is locked",
		},
		{
			name:         "normal mode with technical error",
			userMsg:      "Could not load tasks.",
			technicalErr: &testError{msg: "fetch tasks failed: database is locked"},
			verbose:      false,
			expectedOut:  "Could not load tasks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			r, w, _ := os.Pipe()
			os.Stderr = w

			PrintError(tt.userMsg, tt.technicalErr)

			_ = w.Close()
			os.Stderr = originalStderr

			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r)

			if got := strings.TrimSpace(buf.String()); got != tt.expectedOut {
				t.Errorf("PrintError() output = %q, want %q", got, tt.expectedOut)
			}
		})
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
