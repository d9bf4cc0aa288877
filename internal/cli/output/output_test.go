package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/roamfs/roamfs/pkg/fs"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	table := NewTableData("NAME", "SIZE")
	table.AddRow("report.pdf", "4KiB")
	table.AddRow("notes.txt", "120B")

	if err := PrintTable(&buf, table); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"NAME", "SIZE", "report.pdf", "notes.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer

	err := PrintYAML(&buf, map[string]string{"backend": "sftp"})
	if err != nil {
		t.Fatalf("PrintYAML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "backend: sftp") {
		t.Errorf("unexpected YAML output: %q", buf.String())
	}
}

func TestFormatMode(t *testing.T) {
	mode := fs.FromMode(0o755)
	dir, err := fs.NewDirectory("bin", "/usr/bin", fs.Metadata{Mode: &mode, Type: fs.FileTypeDirectory})
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMode(dir); got != "drwxr-xr-x" {
		t.Errorf("FormatMode(dir) = %q, want drwxr-xr-x", got)
	}

	file, err := fs.NewFile("blob", "/blob", fs.Metadata{Type: fs.FileTypeRegular})
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMode(file); got != "----------" {
		t.Errorf("FormatMode(no mode) = %q, want ----------", got)
	}
}

func TestFormatSize(t *testing.T) {
	file, err := fs.NewFile("big.iso", "/big.iso", fs.Metadata{Size: 2048, Type: fs.FileTypeRegular})
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatSize(file); got != "2KiB" {
		t.Errorf("FormatSize = %q, want 2KiB", got)
	}

	dir, err := fs.NewDirectory("d", "/d", fs.Metadata{Type: fs.FileTypeDirectory})
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatSize(dir); got != "-" {
		t.Errorf("FormatSize(dir) = %q, want -", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(nil); got != "-" {
		t.Errorf("FormatTime(nil) = %q, want -", got)
	}

	ts := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	if got := FormatTime(&ts); got == "" || got == "-" {
		t.Errorf("FormatTime = %q, want formatted timestamp", got)
	}
}

func TestFormatName(t *testing.T) {
	link, err := fs.NewFile("current", "/releases/current", fs.Metadata{
		Type:    fs.FileTypeSymlink,
		Symlink: "/releases/v2",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatName(link); got != "current -> /releases/v2" {
		t.Errorf("FormatName(link) = %q", got)
	}
}
