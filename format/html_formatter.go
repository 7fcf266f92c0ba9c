package format

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/smartcalc/smartcalc/session"
)

//go:embed templates/default.html
var defaultHTMLTemplate string

// HTMLFormatter formats a session.Output as HTML.
// Uses an embedded template with modern styling.
type HTMLFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *HTMLFormatter) Extensions() []string {
	return []string{".html", ".htm"}
}

// TemplateLine represents one rendered line for the HTML template.
type TemplateLine struct {
	Blank  bool
	Source string
	Result string
	Error  string
}

// Format writes out as HTML to w using the embedded template.
func (f *HTMLFormatter) Format(w io.Writer, out session.Output, opts Options) error {
	tmpl, err := template.New("html").Parse(defaultHTMLTemplate)
	if err != nil {
		return err
	}

	data := struct {
		Lines []TemplateLine
	}{}

	for _, line := range out.Lines {
		tl := TemplateLine{Blank: line.Blank, Source: line.Text}
		switch {
		case line.Err != nil:
			tl.Error = line.Err.Error()
		case !line.Blank:
			tl.Result = line.Output
		}
		data.Lines = append(data.Lines, tl)
	}

	return tmpl.Execute(w, data)
}
