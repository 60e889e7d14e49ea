// Package output serializes classification results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ukaji3/layoutview/pkg/layoutview/models"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json or yaml)", s)
	}
}

// Encode renders results in the given format. Pretty only affects JSON.
func Encode(results []models.SheetClassification, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return ToYAML(results)
	default:
		return ToJSON(results, pretty)
	}
}

// ToJSON renders results as a JSON array in sheet order.
// A nil slice is rendered as an empty array.
func ToJSON(results []models.SheetClassification, pretty bool) ([]byte, error) {
	if results == nil {
		results = []models.SheetClassification{}
	}
	return marshalJSON(results, pretty)
}

// SheetToJSON renders a single classification as a JSON object.
func SheetToJSON(result *models.SheetClassification, pretty bool) ([]byte, error) {
	return marshalJSON(result, pretty)
}

// ToYAML renders results as a YAML sequence in sheet order.
func ToYAML(results []models.SheetClassification) ([]byte, error) {
	if results == nil {
		results = []models.SheetClassification{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
