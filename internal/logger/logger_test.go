package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)

	Info("listing complete", Path("/docs"), Entries(3))

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("expected level marker in %q", out)
	}
	if !strings.Contains(out, "listing complete") {
		t.Errorf("expected message in %q", out)
	}
	if !strings.Contains(out, "path=/docs") {
		t.Errorf("expected path attr in %q", out)
	}
	if !strings.Contains(out, "entries=3") {
		t.Errorf("expected entries attr in %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)

	Info("connected", Backend("sftp"), Host("example.com"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "connected" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["backend"] != "sftp" {
		t.Errorf("backend = %v", record["backend"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Debug("invisible")
	Info("also invisible")
	Warn("visible")

	out := buf.String()
	if strings.Contains(out, "invisible") {
		t.Errorf("suppressed levels leaked into %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("expected warn output in %q", out)
	}
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("NONSENSE")
	Info("still works")

	if !strings.Contains(buf.String(), "still works") {
		t.Errorf("invalid level must not break logging: %q", buf.String())
	}
}

func TestColoredLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", true)

	Info("colored")

	if !strings.Contains(buf.String(), colorGreen) {
		t.Errorf("expected ANSI color in %q", buf.String())
	}
}
