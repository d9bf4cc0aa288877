package bytesize

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"plain zero", "0", 0, false},
		{"plain bytes", "1024", 1024, false},
		{"bytes suffix", "512B", 512, false},
		{"kibibytes", "1Ki", 1024, false},
		{"kibibytes full", "1KiB", 1024, false},
		{"mebibytes", "100Mi", 100 * 1024 * 1024, false},
		{"gibibytes", "1Gi", 1024 * 1024 * 1024, false},
		{"tebibytes", "1Ti", 1024 * 1024 * 1024 * 1024, false},
		{"kilobytes", "1K", 1000, false},
		{"megabytes", "100MB", 100 * 1000 * 1000, false},
		{"lowercase unit", "1gi", 1024 * 1024 * 1024, false},
		{"whitespace", "  1Gi ", 1024 * 1024 * 1024, false},
		{"fractional", "1.5Mi", ByteSize(1.5 * 1024 * 1024), false},
		{"empty", "", 0, true},
		{"negative", "-5Mi", 0, true},
		{"bad unit", "1XB", 0, true},
		{"no number", "Gi", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnmarshalText(t *testing.T) {
	var b ByteSize
	if err := b.UnmarshalText([]byte("5Mi")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if b != 5*MiB {
		t.Errorf("got %d, want %d", b, 5*MiB)
	}

	if err := b.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		size ByteSize
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1KiB"},
		{1536, "1.5KiB"},
		{5 * MiB, "5MiB"},
		{2 * GiB, "2GiB"},
		{3 * TiB, "3TiB"},
	}

	for _, tt := range tests {
		if got := tt.size.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", uint64(tt.size), got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []ByteSize{0, 1, 1024, 5 * MiB, 2 * GiB} {
		text, err := size.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		var back ByteSize
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if back != size {
			t.Errorf("round trip %d -> %q -> %d", size, text, back)
		}
	}
}
