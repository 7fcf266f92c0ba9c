package format

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONFormatterRendersResult(t *testing.T) {
	out := execOutput(t, "2 + 2")
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.Lines) != 1 || decoded.Lines[0].Output != "4" || decoded.Lines[0].Type != "Number" {
		t.Fatalf("got %+v, want one line Output=4 Type=Number", decoded.Lines)
	}
}

func TestJSONFormatterBlankLine(t *testing.T) {
	out := execOutput(t, "")
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	var decoded JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.Lines) != 1 || !decoded.Lines[0].Blank {
		t.Fatalf("got %+v, want one blank line", decoded.Lines)
	}
}

func TestJSONFormatterErrorOmittedWithoutOption(t *testing.T) {
	out := execOutput(t, "nosuchvar + 1")
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, out, Options{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	var decoded JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Lines[0].Error != "" {
		t.Errorf("got error %q, want empty (IncludeErrors not set)", decoded.Lines[0].Error)
	}
}

func TestJSONFormatterExtensions(t *testing.T) {
	exts := (&JSONFormatter{}).Extensions()
	if len(exts) != 1 || exts[0] != ".json" {
		t.Errorf("got %v, want [.json]", exts)
	}
}
