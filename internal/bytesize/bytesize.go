// Package bytesize provides a byte-count value type that parses
// human-readable strings like "1Gi", "500Mi" or "100MB" and renders sizes
// back in the largest fitting unit. It is used for configuration values
// and for display in listings.
package bytesize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ByteSize represents a size in bytes.
//
// Supported input formats:
//   - Plain numbers: 1024, 1073741824
//   - Binary units (×1024): Ki/KiB, Mi/MiB, Gi/GiB, Ti/TiB
//   - Decimal units (×1000): K/KB, M/MB, G/GB, T/TB
//   - Bytes: B
type ByteSize uint64

// Common byte size constants
const (
	B  ByteSize = 1
	KB ByteSize = 1000
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB
	TB ByteSize = 1000 * GB

	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
	TiB ByteSize = 1024 * GiB
)

// pattern matches a number followed by an optional unit suffix
var pattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*([a-z]*)\s*$`)

// multipliers maps unit suffixes to their byte multipliers
var multipliers = map[string]ByteSize{
	"": B, "b": B,
	"k": KB, "kb": KB,
	"m": MB, "mb": MB,
	"g": GB, "gb": GB,
	"t": TB, "tb": TB,
	"ki": KiB, "kib": KiB,
	"mi": MiB, "mib": MiB,
	"gi": GiB, "gib": GiB,
	"ti": TiB, "tib": TiB,
}

// Parse converts a human-readable size string into a ByteSize.
func Parse(s string) (ByteSize, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	mult, ok := multipliers[strings.ToLower(m[2])]
	if !ok {
		return 0, fmt.Errorf("invalid byte size unit %q", m[2])
	}

	return ByteSize(value * float64(mult)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so ByteSize works in
// configuration files and environment variables.
func (b *ByteSize) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// String renders the size in the largest binary unit that fits, with one
// decimal of precision when the value is not whole.
func (b ByteSize) String() string {
	switch {
	case b >= TiB:
		return formatUnit(float64(b)/float64(TiB), "TiB")
	case b >= GiB:
		return formatUnit(float64(b)/float64(GiB), "GiB")
	case b >= MiB:
		return formatUnit(float64(b)/float64(MiB), "MiB")
	case b >= KiB:
		return formatUnit(float64(b)/float64(KiB), "KiB")
	default:
		return fmt.Sprintf("%dB", uint64(b))
	}
}

// Bytes returns the size as a plain uint64.
func (b ByteSize) Bytes() uint64 { return uint64(b) }

func formatUnit(v float64, unit string) string {
	if v == float64(uint64(v)) {
		return fmt.Sprintf("%d%s", uint64(v), unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
