package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestHTMLFormatterRendersResult(t *testing.T) {
	out := execOutput(t, "2 + 2")
	var buf bytes.Buffer
	if err := (&HTMLFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "2 + 2") || !strings.Contains(got, "4") {
		t.Errorf("got %q, want source and result both present", got)
	}
}

func TestHTMLFormatterRendersError(t *testing.T) {
	out := execOutput(t, "nosuchvar + 1")
	var buf bytes.Buffer
	if err := (&HTMLFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "error") {
		t.Errorf("got %q, want an error class rendered", buf.String())
	}
}

func TestHTMLFormatterExtensions(t *testing.T) {
	exts := (&HTMLFormatter{}).Extensions()
	if len(exts) != 2 {
		t.Errorf("got %v, want 2 extensions", exts)
	}
}
