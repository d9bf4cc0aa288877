package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// PrintYAML renders data as YAML with two-space indentation, the layout
// used by the configuration file.
func PrintYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
