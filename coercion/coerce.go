// Package coercion converts untyped raw property values into typed analytics
// values, either by inferring the target shape from the value's native shape
// or by honoring an explicit force-type directive. It is stateless and safe
// for concurrent use.
package coercion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"kucukaslan/bridge/domain"
)

// Coerce produces a typed Property from a raw value. An explicit force-type
// always wins over inference. On failure the returned error is a
// *domain.CoercionError naming the property.
func Coerce(name string, raw domain.Raw, force domain.ForceType) (domain.Property, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Property{}, &domain.CoercionError{Property: name, Reason: "property name cannot be empty"}
	}

	var (
		value domain.Value
		err   error
	)
	if force == domain.ForceNone {
		value, err = infer(raw)
	} else {
		value, err = applyForce(raw, force)
	}
	if err != nil {
		return domain.Property{}, &domain.CoercionError{Property: name, Reason: err.Error()}
	}
	return domain.Property{Name: name, Value: value}, nil
}

// infer maps a raw value to the typed variant matching its native shape.
func infer(raw domain.Raw) (domain.Value, error) {
	switch raw.Kind {
	case domain.RawBool:
		return domain.BooleanValue(raw.Bool), nil
	case domain.RawInt32:
		return domain.IntegerValue(int32(raw.Int)), nil
	case domain.RawInt64:
		return domain.LongValue(raw.Int), nil
	case domain.RawFloat32:
		return domain.FloatValue(float32(raw.Real)), nil
	case domain.RawFloat64:
		return domain.DoubleValue(raw.Real), nil
	case domain.RawString:
		return domain.StringValue(raw.Str), nil
	case domain.RawInstant:
		return domain.DateValue(raw.Time), nil
	case domain.RawList:
		return inferList(raw.List)
	}
	return domain.Value{}, fmt.Errorf("unsupported native value shape")
}

// inferList requires a homogeneous list; mixed element types fail rather than
// widen, and an empty list has no inferable element type.
func inferList(items []domain.Raw) (domain.Value, error) {
	if len(items) == 0 {
		return domain.Value{}, fmt.Errorf("cannot infer element type of an empty list")
	}
	switch items[0].Kind {
	case domain.RawInt32, domain.RawInt64:
		ints := make([]int32, len(items))
		for i, item := range items {
			if item.Kind != domain.RawInt32 && item.Kind != domain.RawInt64 {
				return domain.Value{}, fmt.Errorf("mixed element types in list (element %d)", i)
			}
			v, err := int32From(item.Int)
			if err != nil {
				return domain.Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			ints[i] = v
		}
		return domain.IntegerArrayValue(ints), nil
	case domain.RawFloat32, domain.RawFloat64:
		floats := make([]float32, len(items))
		for i, item := range items {
			if item.Kind != domain.RawFloat32 && item.Kind != domain.RawFloat64 {
				return domain.Value{}, fmt.Errorf("mixed element types in list (element %d)", i)
			}
			floats[i] = float32(item.Real)
		}
		return domain.FloatArrayValue(floats), nil
	case domain.RawString:
		strs := make([]string, len(items))
		for i, item := range items {
			if item.Kind != domain.RawString {
				return domain.Value{}, fmt.Errorf("mixed element types in list (element %d)", i)
			}
			strs[i] = item.Str
		}
		return domain.StringArrayValue(strs), nil
	}
	return domain.Value{}, fmt.Errorf("unsupported list element shape")
}

// applyForce reinterprets a raw value as the forced shape regardless of its
// native shape. Array directives convert element-wise with the same rules as
// scalar forcing and fail the whole property on any element failure.
func applyForce(raw domain.Raw, force domain.ForceType) (domain.Value, error) {
	if force.IsArray() {
		if raw.Kind != domain.RawList {
			return domain.Value{}, fmt.Errorf("force type %s requires a list value", force)
		}
		return forceList(raw.List, force)
	}
	if raw.Kind == domain.RawList {
		return domain.Value{}, fmt.Errorf("cannot force a list to scalar type %s", force)
	}

	switch force {
	case domain.ForceBool:
		return forceBool(raw)
	case domain.ForceInteger:
		return forceInteger(raw)
	case domain.ForceFloat:
		return forceFloat(raw)
	case domain.ForceString:
		return forceString(raw)
	case domain.ForceDate:
		if raw.Kind != domain.RawInstant {
			return domain.Value{}, fmt.Errorf("only an instant value can be coerced to a date")
		}
		return domain.DateValue(raw.Time), nil
	}
	return domain.Value{}, fmt.Errorf("unsupported force type")
}

func forceBool(raw domain.Raw) (domain.Value, error) {
	switch raw.Kind {
	case domain.RawBool:
		return domain.BooleanValue(raw.Bool), nil
	case domain.RawInt32, domain.RawInt64:
		switch raw.Int {
		case 0:
			return domain.BooleanValue(false), nil
		case 1:
			return domain.BooleanValue(true), nil
		}
		return domain.Value{}, fmt.Errorf("integer %d is not a boolean", raw.Int)
	case domain.RawString:
		b, err := strconv.ParseBool(raw.Str)
		if err != nil {
			return domain.Value{}, fmt.Errorf("string %q is not a boolean", raw.Str)
		}
		return domain.BooleanValue(b), nil
	}
	return domain.Value{}, fmt.Errorf("cannot coerce %s to boolean", rawShape(raw))
}

func forceInteger(raw domain.Raw) (domain.Value, error) {
	switch raw.Kind {
	case domain.RawInt32, domain.RawInt64:
		v, err := int32From(raw.Int)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.IntegerValue(v), nil
	case domain.RawFloat32, domain.RawFloat64:
		if raw.Real != math.Trunc(raw.Real) {
			return domain.Value{}, fmt.Errorf("%s has a fractional part", raw.Str)
		}
		if raw.Real < math.MinInt32 || raw.Real > math.MaxInt32 {
			return domain.Value{}, fmt.Errorf("%s overflows a 32-bit integer", raw.Str)
		}
		return domain.IntegerValue(int32(raw.Real)), nil
	case domain.RawString:
		i, err := strconv.ParseInt(strings.TrimSpace(raw.Str), 10, 32)
		if err != nil {
			return domain.Value{}, fmt.Errorf("string %q is not a 32-bit integer", raw.Str)
		}
		return domain.IntegerValue(int32(i)), nil
	}
	return domain.Value{}, fmt.Errorf("cannot coerce %s to integer", rawShape(raw))
}

func forceFloat(raw domain.Raw) (domain.Value, error) {
	switch raw.Kind {
	case domain.RawInt32, domain.RawInt64:
		return domain.FloatValue(float32(raw.Int)), nil
	case domain.RawFloat32, domain.RawFloat64:
		return domain.FloatValue(float32(raw.Real)), nil
	case domain.RawString:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw.Str), 32)
		if err != nil {
			return domain.Value{}, fmt.Errorf("string %q is not a float", raw.Str)
		}
		return domain.FloatValue(float32(f)), nil
	}
	return domain.Value{}, fmt.Errorf("cannot coerce %s to float", rawShape(raw))
}

// forceString keeps the original textual form of numeric values rather than
// reformatting them.
func forceString(raw domain.Raw) (domain.Value, error) {
	switch raw.Kind {
	case domain.RawString:
		return domain.StringValue(raw.Str), nil
	case domain.RawBool:
		return domain.StringValue(strconv.FormatBool(raw.Bool)), nil
	case domain.RawInt32, domain.RawInt64, domain.RawFloat32, domain.RawFloat64:
		return domain.StringValue(raw.Str), nil
	case domain.RawInstant:
		return domain.StringValue(raw.Time.UTC().Format(time.RFC3339)), nil
	}
	return domain.Value{}, fmt.Errorf("cannot coerce %s to string", rawShape(raw))
}

func forceList(items []domain.Raw, force domain.ForceType) (domain.Value, error) {
	switch force {
	case domain.ForceIntegerArray:
		ints := make([]int32, len(items))
		for i, item := range items {
			v, err := forceInteger(item)
			if err != nil {
				return domain.Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			ints[i] = v.Int
		}
		return domain.IntegerArrayValue(ints), nil
	case domain.ForceFloatArray:
		floats := make([]float32, len(items))
		for i, item := range items {
			v, err := forceFloat(item)
			if err != nil {
				return domain.Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			floats[i] = v.Float
		}
		return domain.FloatArrayValue(floats), nil
	case domain.ForceStringArray:
		strs := make([]string, len(items))
		for i, item := range items {
			v, err := forceString(item)
			if err != nil {
				return domain.Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			strs[i] = v.Str
		}
		return domain.StringArrayValue(strs), nil
	}
	return domain.Value{}, fmt.Errorf("unsupported array force type")
}

func int32From(i int64) (int32, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("%d overflows a 32-bit integer", i)
	}
	return int32(i), nil
}

func rawShape(raw domain.Raw) string {
	switch raw.Kind {
	case domain.RawBool:
		return "a boolean"
	case domain.RawInt32, domain.RawInt64:
		return "an integer"
	case domain.RawFloat32, domain.RawFloat64:
		return "a floating point number"
	case domain.RawString:
		return "a string"
	case domain.RawInstant:
		return "an instant"
	case domain.RawList:
		return "a list"
	}
	return "an unsupported value"
}
