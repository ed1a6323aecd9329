package loader

import (
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lazyi18n/pkg/translation"
)

// Parser decodes raw document bytes into a translation payload.
type Parser interface {
	Parse(data []byte) (translation.Payload, error)
	SupportsExtension(ext string) bool
}

// JSONParser decodes JSON documents shaped as {"section": {"key": "value"}}.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser instance.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse decodes JSON content into a payload.
func (p *JSONParser) Parse(data []byte) (translation.Payload, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	return buildPayload(raw)
}

// SupportsExtension reports whether the parser handles the given extension.
func (p *JSONParser) SupportsExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// YAMLParser decodes YAML documents with the same section/key/value shape as
// JSONParser.
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser instance.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse decodes YAML content into a payload.
func (p *YAMLParser) Parse(data []byte) (translation.Payload, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	return buildPayload(raw)
}

// SupportsExtension reports whether the parser handles the given extension.
func (p *YAMLParser) SupportsExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

func buildPayload(raw map[string]map[string]string) (translation.Payload, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	payload := make(translation.Payload, len(raw))
	for name, entries := range raw {
		section := make(translation.Section, len(entries))
		for key, value := range entries {
			section[key] = value
		}
		payload[name] = section
	}
	return payload, nil
}
