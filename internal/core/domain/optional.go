package domain

import "encoding/json"

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// Partial-update patches need the distinction between "leave this field
// alone" (absent) and "clear it" (null).
type Optional[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

// Some builds a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Valid: true, Value: v}
}

// Null builds a present, explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present in the document, so Present is always true here.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
