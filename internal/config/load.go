package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates the settings document from a YAML (or JSON)
// file. The raw document is checked against the allow-list before any field
// is decoded: a document containing any unknown key fails with
// *InvalidSettingsError and nothing is decoded.
func LoadFile(path string) (*Settings, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a raw settings document.
func Parse(data []byte) (*Settings, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if violations := checkKeys(raw); len(violations) > 0 {
		return nil, &InvalidSettingsError{Keys: violations}
	}

	var settings Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build settings decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	return &settings, nil
}
