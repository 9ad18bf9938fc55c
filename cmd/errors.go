package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/tasknest/internal/importer"
	"github.com/josephgoksu/tasknest/internal/ui"
)

// loadError is a load outcome that arrived already classified.
type loadError struct {
	importer.Classified
}

func (e *loadError) Error() string {
	return e.Category + ": " + e.Message
}

func classifyCommandError(err error) importer.Classified {
	var le *loadError
	if errors.As(err, &le) {
		return le.Classified
	}
	return importer.Classify(err)
}

// reportError prints a failed command's error the way the task list shows
// load errors.
func reportError(err error) {
	c := classifyCommandError(err)
	if isJSON() {
		_ = printJSON(os.Stdout, map[string]string{"error": c.Message, "category": c.Category})
		return
	}
	PrintError(ui.RenderError(c.Message, c.Category), err)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		// By default, print the clean, user-friendly message.
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}
