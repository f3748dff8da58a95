package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false)
	l.Debug("hidden")
	l.Warn("shown")
	_ = l.Sync()
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") {
		t.Fatalf("missing warn line: %q", out)
	}

	buf.Reset()
	l = NewWithWriter(&buf, true)
	l.Debug("visible")
	_ = l.Sync()
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug logger dropped debug line: %q", buf.String())
	}
}
