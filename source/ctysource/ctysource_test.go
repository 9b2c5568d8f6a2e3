package ctysource

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/go-gum/dynmsg"
)

func TestFromCty(t *testing.T) {
	val := cty.ObjectVal(map[string]cty.Value{
		"number":  cty.NumberIntVal(42),
		"ratio":   cty.NumberFloatVal(0.5),
		"text":    cty.StringVal("foo"),
		"flag":    cty.True,
		"nothing": cty.NullVal(cty.String),
		"list":    cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}),
		"tuple":   cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}),
		"map":     cty.MapVal(map[string]cty.Value{"x": cty.StringVal("y")}),
	})

	value, err := FromCty(val)
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"number":  int64(42),
		"ratio":   0.5,
		"text":    "foo",
		"flag":    true,
		"nothing": nil,
		"list":    []any{int64(1), int64(2)},
		"tuple":   []any{"a", int64(1)},
		"map":     map[string]any{"x": "y"},
	}, value.Interface())
}

func TestFromCtyLargeIntegers(t *testing.T) {
	value, err := FromCty(cty.NumberUIntVal(18446744073709551615))
	require.NoError(t, err)

	u, err := value.Uint()
	require.NoError(t, err)
	require.Equal(t, uint64(18446744073709551615), u)

	_, err = value.Int()
	require.Error(t, err)
}

func TestFromCtyUnknown(t *testing.T) {
	_, err := FromCty(cty.UnknownVal(cty.String))
	require.ErrorIs(t, err, ErrUnknownValue)

	_, err = FromCty(cty.ObjectVal(map[string]cty.Value{
		"a": cty.UnknownVal(cty.Number),
	}))
	require.ErrorIs(t, err, ErrUnknownValue)
}

func TestFromCtyMarked(t *testing.T) {
	value, err := FromCty(cty.StringVal("secret").Mark("sensitive"))
	require.NoError(t, err)
	require.Equal(t, dynmsg.StringValue("secret"), value)
}
