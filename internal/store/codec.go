package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeCollection renders a collection the way it is kept on disk: a JSON
// array indented by two spaces. A nil collection is written as [].
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a stored collection. Empty input is an empty
// collection.
func DecodeCollection[T any](data []byte) ([]T, error) {
	items := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
