package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the three variants a Dataset cell can hold.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindText
)

// Value is a single dataset cell: a number, a piece of text, or missing.
// Loosely-typed inputs are normalized into this representation at the
// Dataset boundary, so downstream engines operate on a single typed
// representation instead of duck-typing per call.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Missing returns the missing value.
func Missing() Value { return Value{kind: KindMissing} }

// NewNumber returns a numeric value. NaN and infinities are normalized to
// missing, keeping datasets NaN-free by construction.
func NewNumber(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

// NewText returns a text value.
func NewText(s string) Value { return Value{kind: KindText, text: s} }

// FromString normalizes a raw string cell: recognized missing tokens become
// missing, parseable numbers become numbers, everything else stays text.
func FromString(s string) Value {
	t := strings.TrimSpace(s)
	if isMissingToken(t) {
		return Missing()
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return NewNumber(f)
	}
	return NewText(t)
}

// isMissingToken reports whether a trimmed string denotes a missing cell.
// Token set follows common CSV conventions (pandas defaults plus "NA"/"NaN").
func isMissingToken(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Text returns the text payload and whether the value is text.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Coerce attempts numeric coercion: numbers pass through, parseable text
// becomes a number, and everything else becomes missing. This is the escape
// hatch for type mismatches; coercion never fails.
func (v Value) Coerce() Value {
	switch v.kind {
	case KindNumber:
		return v
	case KindText:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64); err == nil {
			return NewNumber(f)
		}
	}
	return Missing()
}

// String renders the value for display and CSV round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and missing
// as null, matching the logical shape callers consume at process boundaries.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, numbers and strings into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = Missing()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = NewNumber(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*v = NewText(str)
		return nil
	}
	return fmt.Errorf("value must be null, number or string, got %s", s)
}
