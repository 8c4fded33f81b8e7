package coercion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kucukaslan/bridge/domain"
)

func TestCoerceInfersNativeShapes(t *testing.T) {
	instant := time.UnixMilli(1732233600000)

	tests := []struct {
		name string
		raw  domain.Raw
		want domain.Value
	}{
		{"bool", domain.BoolRaw(true), domain.BooleanValue(true)},
		{"int32", domain.Int32Raw(42), domain.IntegerValue(42)},
		{"int64", domain.Int64Raw(1 << 40), domain.LongValue(1 << 40)},
		{"float32", domain.Float32Raw(1.5), domain.FloatValue(1.5)},
		{"float64", domain.Float64Raw(3.25), domain.DoubleValue(3.25)},
		{"string", domain.StringRaw("page.display"), domain.StringValue("page.display")},
		{"instant", domain.InstantRaw(instant), domain.DateValue(instant)},
		{
			"int list",
			domain.ListRaw(domain.Int32Raw(1), domain.Int32Raw(2)),
			domain.IntegerArrayValue([]int32{1, 2}),
		},
		{
			"float list",
			domain.ListRaw(domain.Float64Raw(1.5), domain.Float64Raw(2.5)),
			domain.FloatArrayValue([]float32{1.5, 2.5}),
		},
		{
			"string list",
			domain.ListRaw(domain.StringRaw("a"), domain.StringRaw("b")),
			domain.StringArrayValue([]string{"a", "b"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop, err := Coerce("p", tt.raw, domain.ForceNone)
			require.NoError(t, err)
			assert.Equal(t, "p", prop.Name)
			assert.Equal(t, tt.want, prop.Value)
		})
	}
}

func TestCoerceForcedScalars(t *testing.T) {
	tests := []struct {
		name  string
		raw   domain.Raw
		force domain.ForceType
		want  domain.Value
	}{
		{"numeric string to integer", domain.StringRaw("1"), domain.ForceInteger, domain.IntegerValue(1)},
		{"numeric string to float", domain.StringRaw("2.5"), domain.ForceFloat, domain.FloatValue(2.5)},
		{"integral double to integer", domain.Float64Raw(7), domain.ForceInteger, domain.IntegerValue(7)},
		{"int to float", domain.Int32Raw(3), domain.ForceFloat, domain.FloatValue(3)},
		{"bool string to bool", domain.StringRaw("true"), domain.ForceBool, domain.BooleanValue(true)},
		{"one to bool", domain.Int32Raw(1), domain.ForceBool, domain.BooleanValue(true)},
		{"bool to string", domain.BoolRaw(false), domain.ForceString, domain.StringValue("false")},
		{"int to string", domain.Int64Raw(99), domain.ForceString, domain.StringValue("99")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop, err := Coerce("p", tt.raw, tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.want, prop.Value)
		})
	}
}

// Forcing a number to String must keep the caller's original literal text
// instead of reformatting it.
func TestCoerceForcedStringKeepsOriginalLiteral(t *testing.T) {
	raw, err := domain.RawFromJSON(json.Number("1.50"))
	require.NoError(t, err)

	prop, err := Coerce("price", raw, domain.ForceString)
	require.NoError(t, err)
	assert.Equal(t, domain.StringValue("1.50"), prop.Value)
}

func TestCoerceForcedArrays(t *testing.T) {
	list := domain.ListRaw(domain.StringRaw("1"), domain.Int32Raw(2), domain.Float64Raw(3))

	prop, err := Coerce("p", list, domain.ForceIntegerArray)
	require.NoError(t, err)
	assert.Equal(t, domain.IntegerArrayValue([]int32{1, 2, 3}), prop.Value)

	prop, err = Coerce("p", list, domain.ForceFloatArray)
	require.NoError(t, err)
	assert.Equal(t, domain.FloatArrayValue([]float32{1, 2, 3}), prop.Value)

	prop, err = Coerce("p", list, domain.ForceStringArray)
	require.NoError(t, err)
	assert.Equal(t, domain.StringArrayValue([]string{"1", "2", "3"}), prop.Value)
}

func TestCoerceFailures(t *testing.T) {
	instant := domain.InstantRaw(time.Now())

	tests := []struct {
		name  string
		prop  string
		raw   domain.Raw
		force domain.ForceType
	}{
		{"empty property name", "", domain.BoolRaw(true), domain.ForceNone},
		{"empty list has no element type", "p", domain.ListRaw(), domain.ForceNone},
		{"mixed list infer", "p", domain.ListRaw(domain.Int32Raw(1), domain.StringRaw("x")), domain.ForceNone},
		{"bool element in inferred list", "p", domain.ListRaw(domain.BoolRaw(true)), domain.ForceNone},
		{"non-numeric string to integer", "p", domain.StringRaw("abc"), domain.ForceInteger},
		{"fractional double to integer", "p", domain.Float64Raw(1.5), domain.ForceInteger},
		{"int64 overflow to integer", "p", domain.Int64Raw(1 << 40), domain.ForceInteger},
		{"string to date", "p", domain.StringRaw("2025-11-22"), domain.ForceDate},
		{"number to date", "p", domain.Int64Raw(1732233600000), domain.ForceDate},
		{"list to date", "p", domain.ListRaw(instant), domain.ForceDate},
		{"list to scalar", "p", domain.ListRaw(domain.Int32Raw(1)), domain.ForceInteger},
		{"scalar to array", "p", domain.Int32Raw(1), domain.ForceIntegerArray},
		{"bad element in forced array", "p", domain.ListRaw(domain.Int32Raw(1), domain.StringRaw("x")), domain.ForceIntegerArray},
		{"float to bool", "p", domain.Float64Raw(0.5), domain.ForceBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.prop, tt.raw, tt.force)
			require.Error(t, err)

			var coercionErr *domain.CoercionError
			require.ErrorAs(t, err, &coercionErr)
			assert.Equal(t, tt.prop, coercionErr.Property)
		})
	}
}

func TestCoerceForcedDateAcceptsInstant(t *testing.T) {
	instant := time.UnixMilli(1732233600000)
	prop, err := Coerce("at", domain.InstantRaw(instant), domain.ForceDate)
	require.NoError(t, err)
	assert.Equal(t, domain.DateValue(instant), prop.Value)
}
