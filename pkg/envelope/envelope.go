// Package envelope unwraps the response shapes the store API uses:
// a bare value, {success, data}, or data nested one level deeper.
package envelope

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

type wrapper struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Rows extracts a list from a bare array, {data:[...]} or {data:{data:[...]}}.
// Any other shape yields an empty slice rather than an error.
func Rows[T any](raw []byte) ([]T, error) {
	list, ok := findArray(raw, 2)
	if !ok {
		return []T{}, nil
	}
	var rows []T
	if err := json.Unmarshal(list, &rows); err != nil {
		return nil, fmt.Errorf("envelope: failed to decode rows: %w", err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Object extracts a single object from a bare object or {success, data:{...}}
func Object[T any](raw []byte) (T, error) {
	var out T
	target := raw
	var w wrapper
	if isObject(raw) && json.Unmarshal(raw, &w) == nil && isObject(w.Data) {
		target = w.Data
	}
	if err := json.Unmarshal(target, &out); err != nil {
		return out, fmt.Errorf("envelope: failed to decode object: %w", err)
	}
	return out, nil
}

// findArray walks down data keys at most depth times looking for an array
func findArray(raw []byte, depth int) ([]byte, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, true
	}
	if depth == 0 || !isObject(trimmed) {
		return nil, false
	}
	var w wrapper
	if err := json.Unmarshal(trimmed, &w); err != nil || len(w.Data) == 0 {
		return nil, false
	}
	return findArray(w.Data, depth-1)
}

func isObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
