package influence

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteResult encodes result to w as json or yaml
func WriteResult(w io.Writer, result *Result, format string) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return checkFormat(format)
	}
}

// WriteEstimate encodes a spread estimate together with its seed set
func WriteEstimate(w io.Writer, seeds []string, estimate SpreadEstimate, format string) error {
	report := struct {
		Seeds    []string       `json:"seeds" yaml:"seeds"`
		Estimate SpreadEstimate `json:"estimate" yaml:"estimate"`
	}{Seeds: seeds, Estimate: estimate}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return checkFormat(format)
	}
}
