package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

// Format formats data as YAML.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if raw, ok := data.(json.RawMessage); ok {
		// JSON is valid YAML; decoding into a node keeps the server's key order
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return err
		}
		blockStyle(&node)
		if err := encoder.Encode(&node); err != nil {
			return err
		}
		return encoder.Close()
	}

	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// blockStyle drops the flow/quoted styles inherited from JSON syntax
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
