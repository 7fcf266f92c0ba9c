package format

import (
	"fmt"
	"io"

	"github.com/smartcalc/smartcalc/session"
)

// MarkdownFormatter formats a session.Output as Markdown: each
// non-blank line in a fenced code block, its result as a following bold
// line.
type MarkdownFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *MarkdownFormatter) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Format writes out as Markdown to w.
func (f *MarkdownFormatter) Format(w io.Writer, out session.Output, opts Options) error {
	for _, line := range out.Lines {
		if line.Blank {
			continue
		}
		fmt.Fprintf(w, "```smartcalc\n%s\n```\n\n", line.Text)
		switch {
		case line.Err != nil:
			if opts.IncludeErrors {
				fmt.Fprintf(w, "**Error:** %v\n\n", line.Err)
			}
		default:
			fmt.Fprintf(w, "**Result:** %s\n\n", line.Output)
		}
	}
	return nil
}
