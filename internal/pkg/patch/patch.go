// Package patch holds the optional-field type used by partial updates.
//
// A Field distinguishes a key that was absent from the request body from one
// that was sent, including one sent as null.
package patch

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	Value T
	Set   bool
}

// Some marks v as provided.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Apply overwrites *dst when the field was provided.
func (f Field[T]) Apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

// UnmarshalJSON is only reached when the key is present, which is what marks
// the field as set. A JSON null leaves Value at its zero value.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
