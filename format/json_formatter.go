package format

import (
	"encoding/json"
	"io"

	"github.com/smartcalc/smartcalc/session"
)

// JSONFormatter formats a session.Output as JSON.
// Useful for programmatic consumption and integration with other tools.
type JSONFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *JSONFormatter) Extensions() []string {
	return []string{".json"}
}

// JSONOutput represents the full Execute result in JSON.
type JSONOutput struct {
	Lines []JSONLine `json:"lines"`
}

// JSONLine represents one line's result in JSON.
type JSONLine struct {
	Source string `json:"source"`
	Blank  bool   `json:"blank,omitempty"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Format writes out as JSON to w.
func (f *JSONFormatter) Format(w io.Writer, out session.Output, opts Options) error {
	result := JSONOutput{Lines: make([]JSONLine, 0, len(out.Lines))}

	for _, line := range out.Lines {
		jl := JSONLine{Source: line.Text, Blank: line.Blank}
		switch {
		case line.Err != nil:
			if opts.IncludeErrors {
				jl.Error = line.Err.Error()
			}
		case !line.Blank:
			jl.Output = line.Output
			if line.Value != nil {
				jl.Type = line.Value.TypeName()
			}
		}
		result.Lines = append(result.Lines, jl)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
