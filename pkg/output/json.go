// pkg/output/json.go

// Package output renders reports for the terminal and for machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a finished report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat accepts a case-insensitive format name; empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Structured reports whether f renders the whole result at the end instead
// of streaming it.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// JSONTo writes data as indented JSON.
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAMLTo writes data as YAML.
func YAMLTo(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Structured writes data in a machine format. Text is not handled here.
func Structured(w io.Writer, f Format, data interface{}) error {
	switch f {
	case FormatJSON:
		return JSONTo(w, data)
	case FormatYAML:
		return YAMLTo(w, data)
	default:
		return fmt.Errorf("format %q is not a structured format", f)
	}
}
