package jsonsource

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-gum/dynmsg"
	"github.com/go-gum/dynmsg/internal/testschema"
)

func TestParse(t *testing.T) {
	value, err := Parse([]byte(`{
		"number": 1,
		"big": 18446744073709551615,
		"float": -2.5e3,
		"text": "foo",
		"flag": true,
		"nothing": null,
		"list": [1, [2], {"x": "y"}]
	}`))
	require.NoError(t, err)
	require.Equal(t, dynmsg.ValueObject, value.Kind())

	big, err := value.Get("big")
	require.NoError(t, err)

	bigValue, err := big.Uint()
	require.NoError(t, err)
	require.Equal(t, uint64(18446744073709551615), bigValue)

	require.Equal(t, map[string]any{
		"number":  int64(1),
		"big":     float64(18446744073709551615),
		"float":   -2500.0,
		"text":    "foo",
		"flag":    true,
		"nothing": nil,
		"list":    []any{int64(1), []any{int64(2)}, map[string]any{"x": "y"}},
	}, value.Interface())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(``))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Parse([]byte(`{"a": 1} {"b": 2}`))
	require.ErrorIs(t, err, ErrTrailingData)

	_, err = Parse([]byte(`{"a": `))
	require.Error(t, err)
}

func TestReaderStream(t *testing.T) {
	r := NewReader(strings.NewReader("{\"foo\": 1}\n{\"foo\": 2}\n[]\n"))

	values, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, values, 3)

	foo, err := values[1].Get("foo")
	require.NoError(t, err)

	fooValue, err := foo.Int()
	require.NoError(t, err)
	require.Equal(t, int64(2), fooValue)

	require.Equal(t, dynmsg.ValueArray, values[2].Kind())
}

func TestDecodeParsedJSON(t *testing.T) {
	reg, err := dynmsg.NewRegistryFromSet(testschema.FileDescriptorSet())
	require.NoError(t, err)

	decoders, err := dynmsg.BuildDecoders(reg)
	require.NoError(t, err)

	value, err := Parse([]byte(`{"number": 1, "text": "foo", "repeated_number": [1, 2, 3], "msg": {"foo": 123}}`))
	require.NoError(t, err)

	msg, err := decoders["fixture.MessageFixture"](value)
	require.NoError(t, err)

	fields := msg.Descriptor().Fields()
	require.Equal(t, int64(1), msg.Get(fields.ByName("number")).Int())
	require.Equal(t, 3, msg.Get(fields.ByName("repeated_number")).List().Len())

	nested := msg.Get(fields.ByName("msg")).Message()
	require.Equal(t, int64(123), nested.Get(nested.Descriptor().Fields().ByName("foo")).Int())
}
