package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrLabelsEncode is returned when labels cannot be serialised for a write.
var ErrLabelsEncode = errors.New("failed to encode labels")

// EncodeLabels serialises labels as a JSON array. Nil encodes as [].
func EncodeLabels(labels []string) (string, error) {
	if labels == nil {
		return "[]", nil
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLabelsEncode, err)
	}
	return string(b), nil
}

// DecodeLabels parses stored label text. Malformed or null text yields an
// empty slice; reads never fail on labels.
func DecodeLabels(raw string) []string {
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil || labels == nil {
		return []string{}
	}
	return labels
}
