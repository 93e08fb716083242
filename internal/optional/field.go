// Package optional provides a presence-aware value for partial updates:
// a Field distinguishes "not supplied" from "supplied with a zero or null value".
package optional

import "encoding/json"

// Field holds a value of T together with whether it was supplied.
// The zero Field is unset.
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// None returns an unset Field.
func None[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set
}

// UnmarshalJSON marks the field as set whenever its key is present in the
// document, including an explicit null.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	return json.Unmarshal(b, &f.Value)
}

// MarshalJSON encodes the held value; an unset field encodes as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns a pointer to the held value, or nil when the field is unset.
func (f Field[T]) Ptr() *T {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}
