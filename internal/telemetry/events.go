package telemetry

import "time"

// Event names
const (
	EventCommandExecuted = "command_executed"
	EventCommandError    = "command_error"
	EventImportCompleted = "import_completed"
	EventImportFailed    = "import_failed"
)

// CommandProps describes one CLI invocation. Arguments are never sent.
func CommandProps(command string, d time.Duration) Properties {
	return Properties{
		"command":     command,
		"duration_ms": d.Milliseconds(),
	}
}

// ImportProps describes a finished import. Only counts and categories are
// sent, never task content.
func ImportProps(count int, atomic bool, origin string, d time.Duration) Properties {
	return Properties{
		"task_count":  count,
		"atomic":      atomic,
		"origin":      origin,
		"duration_ms": d.Milliseconds(),
	}
}

// FailureProps describes a failed command or import by category only.
func FailureProps(command, category string) Properties {
	return Properties{
		"command":  command,
		"category": category,
	}
}
