package fixtures

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodifica una lista YAML de T. Los campos desconocidos son
// error, así una errata en un fixture no pasa desapercibida.
func DecodeYAML[T any](raw []byte, validate func(T) error) ([]T, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var items []T
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if validate != nil {
		for i, item := range items {
			if err := validate(item); err != nil {
				return nil, fmt.Errorf("fixture #%d: %w", i, err)
			}
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
