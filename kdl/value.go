package kdl

import "strconv"

// Kind indicates the type of a KDL value.
type Kind int

const (
	// KindString represents a quoted, raw or bare-identifier string.
	KindString Kind = iota

	// KindInteger represents an integer literal in any radix.
	KindInteger

	// KindFloat represents a decimal literal with a fraction or exponent, or
	// one of the keywords #inf, #-inf and #nan. Integers outside the int64
	// range are floats with Raw set.
	KindFloat

	// KindBool represents true or false.
	KindBool

	// KindNull represents null.
	KindNull
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// Value is a single KDL value. Exactly one of the typed fields is meaningful,
// selected by Kind.
type Value struct {
	Kind  Kind
	Type  string // type annotation, if any
	Str   string
	Int   int64
	Float float64
	Bool  bool

	// Raw is the decimal text of numeric values too large for Int or too
	// precise for Float. It is empty otherwise.
	Raw string
}

// StringValue returns a new string Value.
func StringValue(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// IntValue returns a new integer Value.
func IntValue(i int64) *Value {
	return &Value{Kind: KindInteger, Int: i}
}

// BoolValue returns a new boolean Value.
func BoolValue(b bool) *Value {
	return &Value{Kind: KindBool, Bool: b}
}

// NullValue returns a new null Value.
func NullValue() *Value {
	return &Value{Kind: KindNull}
}

// AsString returns the string content of v if v is a string.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}

	return v.Str, true
}

// String returns the natural textual form of v: strings verbatim (unquoted),
// integers in decimal, floats as written, and true, false or null.
func (v *Value) String() string {
	if v == nil {
		return ""
	}

	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		if v.Raw != "" {
			return v.Raw
		}

		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "null"
	}
}

// Native returns v as a Go value: string, int64, float64, bool or nil.
func (v *Value) Native() any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	default:
		return nil
	}
}
