package survey

import (
	"encoding/json"
	"strconv"
)

// Kind describes what a parsed cell holds.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindString
)

// Value is one typed cell of a response row.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Absent returns the value of an empty or missing cell.
func Absent() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a textual value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Kind reports whether the cell is empty, numeric or text.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the cell held anything at all.
func (v Value) Present() bool { return v.kind != KindAbsent }

// Float returns the numeric value and whether the cell was numeric.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text renders the value as it would appear in a category label.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Optional converts a numeric cell to an Optional; anything else is None.
func (v Value) Optional() Optional {
	if f, ok := v.Float(); ok {
		return Some(f)
	}
	return None
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// Optional is a numeric answer that may be missing. Zero is a legitimate answer.
type Optional struct {
	Value float64
	Valid bool
}

// None is the missing answer.
var None = Optional{}

// Some wraps a present answer.
func Some(f float64) Optional { return Optional{Value: f, Valid: true} }

// Or returns the answer, or def when it is missing.
func (o Optional) Or(def float64) float64 {
	if !o.Valid {
		return def
	}
	return o.Value
}

func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
