package survey

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Handle identifies one of the three grip designs under test.
type Handle int

const (
	Rectangle Handle = iota
	Curved
	Circle
)

// HandleCount is the number of handle designs in every survey.
const HandleCount = 3

// Handles lists every handle in priority order. Ties between handles always
// resolve to the earliest entry.
var Handles = [HandleCount]Handle{Rectangle, Curved, Circle}

// Pairs lists every unordered handle pair in comparison order.
var Pairs = [][2]Handle{
	{Rectangle, Curved},
	{Rectangle, Circle},
	{Curved, Circle},
}

var handleNames = [HandleCount]string{
	"Rectangle Handle",
	"Curved Handle",
	"Circle Undergrip Handle",
}

// Column suffixes follow the survey export: the first handle's questions carry
// the bare name, later repeats of the same question get _1 and _2.
var handleSuffixes = [HandleCount]string{"", "_1", "_2"}

func (h Handle) String() string {
	if h < 0 || int(h) >= HandleCount {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleNames[h]
}

// Suffix returns the column-name suffix the survey export uses for h.
func (h Handle) Suffix() string {
	if h < 0 || int(h) >= HandleCount {
		return ""
	}
	return handleSuffixes[h]
}

// MarshalText encodes the handle by its display name.
func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// ParseHandle resolves a display name back to a Handle.
func ParseHandle(name string) (Handle, bool) {
	for i, n := range handleNames {
		if n == name {
			return Handle(i), true
		}
	}
	return 0, false
}

// PerHandle holds one value per handle, indexed by Handle.
type PerHandle[T any] [HandleCount]T

// MarshalJSON encodes the values as an object keyed by handle name, in handle order.
func (p PerHandle[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range Handles {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(h.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p[h])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", h, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
