package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestTextFormatterRendersResult(t *testing.T) {
	out := execOutput(t, "2 + 2")
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "4" {
		t.Errorf("got %q, want \"4\"", got)
	}
}

func TestTextFormatterVerboseShowsSource(t *testing.T) {
	out := execOutput(t, "2 + 2")
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, out, Options{Verbose: true}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "2 + 2") || !strings.Contains(got, "4") {
		t.Errorf("got %q, want source and result both present", got)
	}
}

func TestTextFormatterBlankLineProducesNothing(t *testing.T) {
	out := execOutput(t, "")
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("got %q, want empty output for a blank line", buf.String())
	}
}

func TestTextFormatterIncludeErrors(t *testing.T) {
	out := execOutput(t, "nosuchvar + 1")
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, out, Options{IncludeErrors: true}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Errorf("got %q, want an Error: line", buf.String())
	}
}

func TestTextFormatterExtensions(t *testing.T) {
	exts := (&TextFormatter{}).Extensions()
	if len(exts) != 1 || exts[0] != ".txt" {
		t.Errorf("got %v, want [.txt]", exts)
	}
}
