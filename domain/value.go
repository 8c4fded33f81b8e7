package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// RawKind enumerates the native input shapes the bridge accepts.
// Anything outside this enumeration is rejected at the coercion boundary.
type RawKind int

const (
	RawInvalid RawKind = iota
	RawBool
	RawInt32
	RawInt64
	RawFloat32
	RawFloat64
	RawString
	RawInstant
	RawList
)

// Raw is an untyped property value as received from the caller, tagged with
// its native shape. Numeric values keep the caller's original literal text in
// Str so that forcing to String preserves the textual form instead of
// reformatting.
type Raw struct {
	Kind RawKind
	Bool bool
	Int  int64
	Real float64
	Str  string
	Time time.Time
	List []Raw
}

func BoolRaw(b bool) Raw { return Raw{Kind: RawBool, Bool: b} }
func Int32Raw(i int32) Raw {
	return Raw{Kind: RawInt32, Int: int64(i), Str: strconv.FormatInt(int64(i), 10)}
}
func Int64Raw(i int64) Raw {
	return Raw{Kind: RawInt64, Int: i, Str: strconv.FormatInt(i, 10)}
}
func Float32Raw(f float32) Raw {
	return Raw{Kind: RawFloat32, Real: float64(f), Str: strconv.FormatFloat(float64(f), 'g', -1, 32)}
}
func Float64Raw(f float64) Raw {
	return Raw{Kind: RawFloat64, Real: f, Str: strconv.FormatFloat(f, 'g', -1, 64)}
}
func StringRaw(s string) Raw     { return Raw{Kind: RawString, Str: s} }
func InstantRaw(t time.Time) Raw { return Raw{Kind: RawInstant, Time: t} }
func ListRaw(items ...Raw) Raw   { return Raw{Kind: RawList, List: items} }

// RawFromJSON maps a decoded JSON value onto the accepted native shapes.
// The decoder must run with UseNumber so that integer and decimal literals are
// distinguishable and the original literal text survives. Nested lists and
// JSON objects are outside the accepted enumeration.
func RawFromJSON(v any) (Raw, error) {
	switch t := v.(type) {
	case bool:
		return BoolRaw(t), nil
	case string:
		return StringRaw(t), nil
	case json.Number:
		return rawFromNumber(t)
	case []any:
		items := make([]Raw, 0, len(t))
		for i, el := range t {
			raw, err := RawFromJSON(el)
			if err != nil {
				return Raw{}, fmt.Errorf("list element %d: %w", i, err)
			}
			if raw.Kind == RawList {
				return Raw{}, fmt.Errorf("list element %d: nested lists are not supported", i)
			}
			items = append(items, raw)
		}
		return Raw{Kind: RawList, List: items}, nil
	default:
		return Raw{}, fmt.Errorf("unsupported value shape %T", v)
	}
}

func rawFromNumber(n json.Number) (Raw, error) {
	if i, err := n.Int64(); err == nil {
		kind := RawInt64
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			kind = RawInt32
		}
		return Raw{Kind: kind, Int: i, Str: n.String()}, nil
	}
	f, err := n.Float64()
	if err != nil {
		return Raw{}, fmt.Errorf("unsupported numeric literal %q", n.String())
	}
	return Raw{Kind: RawFloat64, Real: f, Str: n.String()}, nil
}

// ValueKind enumerates the typed analytics property shapes.
type ValueKind int

const (
	KindBoolean ValueKind = iota + 1
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindString
	KindDate
	KindIntegerArray
	KindFloatArray
	KindStringArray
)

func (k ValueKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindIntegerArray:
		return "integer[]"
	case KindFloatArray:
		return "float[]"
	case KindStringArray:
		return "string[]"
	}
	return "invalid"
}

// Value is a typed analytics property value. Exactly the field matching Kind
// is meaningful; array variants are homogeneous by construction.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Int     int32
	Long    int64
	Float   float32
	Double  float64
	Str     string
	Date    time.Time
	Ints    []int32
	Floats  []float32
	Strings []string
}

func BooleanValue(b bool) Value         { return Value{Kind: KindBoolean, Bool: b} }
func IntegerValue(i int32) Value        { return Value{Kind: KindInteger, Int: i} }
func LongValue(i int64) Value           { return Value{Kind: KindLong, Long: i} }
func FloatValue(f float32) Value        { return Value{Kind: KindFloat, Float: f} }
func DoubleValue(f float64) Value       { return Value{Kind: KindDouble, Double: f} }
func StringValue(s string) Value        { return Value{Kind: KindString, Str: s} }
func DateValue(t time.Time) Value       { return Value{Kind: KindDate, Date: t} }
func IntegerArrayValue(v []int32) Value { return Value{Kind: KindIntegerArray, Ints: v} }
func FloatArrayValue(v []float32) Value { return Value{Kind: KindFloatArray, Floats: v} }
func StringArrayValue(v []string) Value { return Value{Kind: KindStringArray, Strings: v} }

// MarshalJSON serializes the value as {"type": ..., "value": ...} for the
// collector. Dates are epoch milliseconds.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.Kind {
	case KindBoolean:
		payload = v.Bool
	case KindInteger:
		payload = v.Int
	case KindLong:
		payload = v.Long
	case KindFloat:
		payload = v.Float
	case KindDouble:
		payload = v.Double
	case KindString:
		payload = v.Str
	case KindDate:
		payload = v.Date.UnixMilli()
	case KindIntegerArray:
		payload = v.Ints
	case KindFloatArray:
		payload = v.Floats
	case KindStringArray:
		payload = v.Strings
	default:
		return nil, fmt.Errorf("cannot serialize value of kind %d", v.Kind)
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{Type: v.Kind.String(), Value: payload})
}

// ForceType is the explicit coercion directive attached to a raw property
// value. ForceNone means the target shape is inferred from the native shape.
type ForceType int

const (
	ForceNone ForceType = iota
	ForceBool
	ForceInteger
	ForceFloat
	ForceString
	ForceDate
	ForceIntegerArray
	ForceFloatArray
	ForceStringArray
)

var forceTypeNames = map[string]ForceType{
	"":    ForceNone,
	"b":   ForceBool,
	"n":   ForceInteger,
	"f":   ForceFloat,
	"s":   ForceString,
	"d":   ForceDate,
	"a:n": ForceIntegerArray,
	"a:f": ForceFloatArray,
	"a:s": ForceStringArray,
}

// ParseForceType maps a wire directive string to its ForceType.
func ParseForceType(s string) (ForceType, error) {
	ft, ok := forceTypeNames[s]
	if !ok {
		return ForceNone, fmt.Errorf("unknown force type %q", s)
	}
	return ft, nil
}

func (f ForceType) String() string {
	for name, ft := range forceTypeNames {
		if ft == f && name != "" {
			return name
		}
	}
	return "none"
}

// IsArray reports whether the directive targets an array variant.
func (f ForceType) IsArray() bool {
	return f == ForceIntegerArray || f == ForceFloatArray || f == ForceStringArray
}
