package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how snapshot content is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the named format, defaulting to JSON.
func ParseFormat(name string) Format {
	if strings.EqualFold(strings.TrimSpace(name), string(FormatYAML)) {
		return FormatYAML
	}
	return FormatJSON
}

// Toggle flips between JSON and YAML.
func (f Format) Toggle() Format {
	if f == FormatYAML {
		return FormatJSON
	}
	return FormatYAML
}

// Pretty renders content as indented JSON or as block YAML. Key order is kept
// in both forms.
func Pretty(content json.RawMessage, format Format) (string, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return "", nil
	}
	if format == FormatYAML {
		return prettyYAML(content)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "", "  "); err != nil {
		return "", fmt.Errorf("format json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

func prettyYAML(content json.RawMessage) (string, error) {
	if !json.Valid(content) {
		return "", fmt.Errorf("format yaml: content is not valid json")
	}
	// JSON is YAML, so decoding into a node keeps the document's key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("format yaml: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("format yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("format yaml: %w", err)
	}
	return buf.String(), nil
}

// blockStyle drops the flow and quoting styles JSON input carries.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
