package domain

import (
	"bytes"         // null literal detection
	"encoding/json" // Unmarshaler implementation
)

// Optional is a field of a partial update. It distinguishes a key that was
// absent from the request body (Set is false), a key sent as JSON null
// (Set and Null) and a key carrying a value (Set with Value).
type Optional[T any] struct {
	Set   bool // Key was present in the body
	Null  bool // Key was present with a null value
	Value T    // Decoded value when Set and not Null
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the body, which is what
// makes Set meaningful.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// HasValue reports whether the field carries a non-null value.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr converts a set field to the pointer form used by nullable columns.
// It must only be called when Set is true.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
