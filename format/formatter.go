// Package format renders a session.Output — the per-line results of one
// SmartCalc Execute call — into a host-facing representation (plain
// text, JSON, Markdown, HTML).
package format

import (
	"io"

	"github.com/smartcalc/smartcalc/session"
)

// Formatter renders a session.Output for output.
// All formatters must implement this interface.
type Formatter interface {
	// Format writes the rendered output to the writer.
	Format(w io.Writer, out session.Output, opts Options) error

	// Extensions returns file extensions this formatter handles.
	Extensions() []string
}

// Options controls formatter behavior.
type Options struct {
	Verbose       bool   // Show source lines alongside results
	IncludeErrors bool   // Include error details
	Template      string // For template-based formatters (future use)
}
