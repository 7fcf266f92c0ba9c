package format

import "testing"

// TestFormatterInterface ensures all formatters implement the interface correctly.
func TestFormatterInterface(t *testing.T) {
	formatters := []Formatter{
		&TextFormatter{},
		&JSONFormatter{},
		&HTMLFormatter{},
		&MarkdownFormatter{},
	}

	for _, f := range formatters {
		if f == nil {
			t.Error("Formatter should not be nil")
		}
		if f.Extensions() == nil {
			t.Error("Extensions() should not return nil")
		}
	}
}

func TestOptions(t *testing.T) {
	opts := Options{
		Verbose:       true,
		IncludeErrors: true,
		Template:      "custom",
	}

	if !opts.Verbose {
		t.Error("Verbose should be true")
	}
	if !opts.IncludeErrors {
		t.Error("IncludeErrors should be true")
	}
	if opts.Template != "custom" {
		t.Errorf("expected template 'custom', got '%s'", opts.Template)
	}
}

// TestFormatterWithOutput verifies each formatter accepts a session.Output
// without erroring; per-formatter content assertions live in their own
// test files.
func TestFormatterWithOutput(t *testing.T) {
	out := execOutput(t, "x = 10")

	formatters := []Formatter{
		&TextFormatter{},
		&JSONFormatter{},
		&HTMLFormatter{},
		&MarkdownFormatter{},
	}

	for _, f := range formatters {
		var buf discardWriter
		if err := f.Format(buf, out, Options{}); err != nil {
			t.Errorf("%T.Format: %v", f, err)
		}
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
