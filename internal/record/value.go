package record

import (
	"encoding/json"
	"time"
)

// Kind discriminates the closed set of shapes a source value can take.
// Everything a backend delivers is either one of the scalar kinds or a
// collection of values; there is no open "any" escape hatch.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindTime
	KindCollection
)

// Value is a tagged scalar-or-collection field value as delivered by a
// record source. The zero Value is the empty string.
type Value struct {
	kind  Kind
	str   string
	num   float64
	b     bool
	t     time.Time
	items []Value
}

func String(s string) Value       { return Value{kind: KindString, str: s} }
func Number(f float64) Value      { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value      { return Value{kind: KindTime, t: t} }
func Collection(vs []Value) Value { return Value{kind: KindCollection, items: vs} }

func (v Value) Kind() Kind { return v.kind }

// IsCollection reports whether the value violates the scalar shape contract.
func (v Value) IsCollection() bool { return v.kind == KindCollection }

// Str returns the value as a string when it holds one.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the value as a number when it holds one.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// BoolVal returns the value as a bool when it holds one.
func (v Value) BoolVal() (bool, bool) {
	return v.b, v.kind == KindBool
}

// TimeVal returns the value as a timestamp when it holds one.
func (v Value) TimeVal() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Items returns the element values of a collection, nil otherwise.
func (v Value) Items() []Value {
	if v.kind != KindCollection {
		return nil
	}
	return v.items
}

// MarshalJSON renders scalars as their native JSON type and collections as
// arrays, so tables serialize the way consumers expect.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t)
	case KindCollection:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return []byte("null"), nil
}
