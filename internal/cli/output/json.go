package output

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONFormatter formats data as indented JSON.
type JSONFormatter struct{}

// Format formats data as indented JSON. Raw server bodies keep their key order.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	if raw, ok := data.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
