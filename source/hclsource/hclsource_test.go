package hclsource

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/go-gum/dynmsg"
	"github.com/go-gum/dynmsg/internal/testschema"
)

func TestParse(t *testing.T) {
	value, err := Parse([]byte(`
number = 1 + 2
text = "foo"
repeated_number = [1, 2, 3]

msg {
  foo = 123
}
`), "fixture.hcl")
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"number":          int64(3),
		"text":            "foo",
		"repeated_number": []any{int64(1), int64(2), int64(3)},
		"msg":             map[string]any{"foo": int64(123)},
	}, value.Interface())
}

func TestParseRepeatedBlocks(t *testing.T) {
	value, err := Parse([]byte(`
name = "root"

children {
  name = "a"
}

children {
  name = "b"
}
`), "tree.hcl")
	require.NoError(t, err)

	children, err := value.Get("children")
	require.NoError(t, err)
	require.Equal(t, dynmsg.ValueArray, children.Kind())
}

func TestParseWithContext(t *testing.T) {
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"base": cty.NumberIntVal(40),
		},
	}

	value, err := ParseWithContext([]byte(`foo = base + 2`), "nested.hcl", ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"foo": int64(42)}, value.Interface())

	// without a context the variable is not defined
	_, err = Parse([]byte(`foo = base + 2`), "nested.hcl")
	require.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`foo = `), "broken.hcl")
	require.Error(t, err)

	var diags hcl.Diagnostics
	require.ErrorAs(t, err, &diags)
	require.True(t, diags.HasErrors())

	_, err = Parse([]byte(`item "a" {}`), "labels.hcl")
	require.ErrorContains(t, err, "labels are not supported")

	_, err = Parse([]byte("msg = {}\nmsg {}\n"), "conflict.hcl")
	require.Error(t, err)
}

func TestParseReportsFirstBrokenAttribute(t *testing.T) {
	src := []byte(`
zzz = first_undefined
aaa = second_undefined
mmm = third_undefined
`)

	for range 10 {
		_, err := Parse(src, "broken.hcl")

		var diags hcl.Diagnostics
		require.ErrorAs(t, err, &diags)
		require.Equal(t, 2, diags[0].Subject.Start.Line)
	}
}

func TestDecodeSingleBlockIntoRepeatedField(t *testing.T) {
	reg, err := dynmsg.NewRegistryFromSet(testschema.FileDescriptorSet())
	require.NoError(t, err)

	// a single block is an object, a repeated field needs the list syntax
	value, err := Parse([]byte(`
name = "root"

children {
  name     = "leaf"
  children = []
}
`), "tree.hcl")
	require.NoError(t, err)

	_, err = dynmsg.NewDecoder(reg).Unmarshal("fixture.Tree", value)
	require.ErrorIs(t, err, dynmsg.NotAnArrayError{Found: dynmsg.ValueObject})
}

func TestDecodeParsedHCL(t *testing.T) {
	reg, err := dynmsg.NewRegistryFromSet(testschema.FileDescriptorSet())
	require.NoError(t, err)

	value, err := Parse([]byte(`
name = "root"

children {
  name     = "a"
  children = []
}

children {
  name     = "b"
  children = [{ name = "b.1", children = [] }]
}
`), "tree.hcl")
	require.NoError(t, err)

	msg, err := dynmsg.NewDecoder(reg).Unmarshal("fixture.Tree", value)
	require.NoError(t, err)

	children := msg.Get(msg.Descriptor().Fields().ByName("children")).List()
	require.Equal(t, 2, children.Len())

	b := children.Get(1).Message()
	require.Equal(t, 1, b.Get(b.Descriptor().Fields().ByName("children")).List().Len())
}
