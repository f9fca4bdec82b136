// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants give status lines a consistent look across commands.
const (
	// Success marks a completed operation, such as a written report.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a data-quality issue that did not stop the run.
	Warning = "!"

	// Info marks general information.
	Info = "i"

	// Watching marks the watch loop waiting for changes.
	Watching = "…"
)
