package overrides

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// State is the tri-state of an overridable field.
type State uint8

const (
	// StateInherit keeps the default value. It is the zero state.
	StateInherit State = iota
	// StateClear removes the default value (a null href means "no link").
	StateClear
	// StateValue replaces the default value.
	StateValue
)

func (s State) String() string {
	switch s {
	case StateClear:
		return "clear"
	case StateValue:
		return "value"
	default:
		return "inherit"
	}
}

// Field carries one overridable value. In JSON an absent key inherits,
// null clears and anything else is a value. Empty strings and empty lists
// decode as inherit so admins can blank a form input without wiping the
// default.
type Field[T any] struct {
	state State
	value T
}

// Inherit returns a field that keeps the default value.
func Inherit[T any]() Field[T] { return Field[T]{} }

// Clear returns a field that removes the default value.
func Clear[T any]() Field[T] { return Field[T]{state: StateClear} }

// Value returns a field that replaces the default value with v.
func Value[T any](v T) Field[T] { return Field[T]{state: StateValue, value: v} }

func (f Field[T]) State() State { return f.state }

// Get returns the value and whether the field is in the value state.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == StateValue
}

func (f Field[T]) IsInherit() bool { return f.state == StateInherit }
func (f Field[T]) IsClear() bool   { return f.state == StateClear }

// IsZero lets encoding/json omit inherited fields via the omitzero option.
func (f Field[T]) IsZero() bool { return f.state == StateInherit }

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != StateValue {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if isEmpty(v) {
		*f = Inherit[T]()
		return nil
	}
	*f = Value(v)
	return nil
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Invalid:
		return true
	}
	return false
}
