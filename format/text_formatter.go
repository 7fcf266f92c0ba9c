package format

import (
	"fmt"
	"io"

	"github.com/smartcalc/smartcalc/session"
)

// TextFormatter formats a session.Output as plain text.
// This is the primary formatter for interactive use (REPL, CLI).
type TextFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *TextFormatter) Extensions() []string {
	return []string{".txt"}
}

// Format writes one line per input line: the source line in verbose
// mode, then either its error or its rendered result. Blank/comment
// lines produce no result line; in verbose mode a comment line's source
// text is still echoed.
func (f *TextFormatter) Format(w io.Writer, out session.Output, opts Options) error {
	for _, line := range out.Lines {
		if opts.Verbose && line.Text != "" {
			fmt.Fprintln(w, line.Text)
		}
		switch {
		case line.Blank:
			// nothing to print
		case line.Err != nil:
			if opts.IncludeErrors {
				fmt.Fprintf(w, "Error: %v\n", line.Err)
			}
		default:
			fmt.Fprintln(w, line.Output)
		}
	}
	return nil
}
