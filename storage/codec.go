package storage

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// Encode serializes a value into the scalar payload stored on entities.
func Encode(v interface{}) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// Decode deserializes a payload produced by Encode into v.
func Decode(payload string, v interface{}) error {
	if err := yaml.UnmarshalStrict([]byte(payload), v); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}
