package domain

import (
	"bytes"
	"encoding/json"
)

// Ref 只有 id 或已解析的值, JSON 輸出為字串或物件
type Ref[T any] struct {
	id    string
	value *T
}

// RefID 未解析
func RefID[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Resolved 已解析
func Resolved[T any](id string, v T) Ref[T] {
	return Ref[T]{id: id, value: &v}
}

// ID 永遠有值
func (r Ref[T]) ID() string { return r.id }

// Value 已解析時回傳 true
func (r Ref[T]) Value() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// IsResolved check resolved
func (r Ref[T]) IsResolved() bool { return r.value != nil }

// MarshalJSON 字串 id 或物件
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.value != nil {
		return json.Marshal(r.value)
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON 接受字串 id 或物件
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		r.value = nil
		return json.Unmarshal(b, &r.id)
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	r.value = &v
	if withID, ok := any(v).(interface{ GetID() string }); ok {
		r.id = withID.GetID()
	}
	return nil
}
