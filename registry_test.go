package dynmsg

import (
	"testing"

	"github.com/go-gum/dynmsg/internal/testschema"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(testschema.Bytes())
	require.NoError(t, err)

	require.Equal(t, []string{testschema.FixtureFile, testschema.OtherFile}, reg.Files())
	require.Equal(t, []string{"other.Envelope"}, reg.MessagesOf(testschema.OtherFile))

	// nested messages follow their parent, map entries are skipped
	require.Equal(t, []string{
		"fixture.MessageFixture",
		"fixture.MessageFixture.Nested",
		"fixture.Empty",
		"fixture.Scalars",
		"fixture.Tree",
		"fixture.Ping",
		"fixture.Pong",
		"fixture.WithMap",
		"fixture.WithEnum",
		"fixture.WithBytes",
		"fixture.WithRepeatedEnum",
		"fixture.Mixed",
		"other.Envelope",
	}, reg.Messages())

	md, err := reg.Resolve(".fixture.MessageFixture.Nested")
	require.NoError(t, err)
	require.Equal(t, "Nested", string(md.Name()))
}

func TestLoadRegistryInvalidInput(t *testing.T) {
	_, err := LoadRegistry([]byte("this is not a descriptor set"))
	require.Error(t, err)
}

func TestNewRegistryFromSetMissingImport(t *testing.T) {
	set := &descriptorpb.FileDescriptorSet{
		File: testschema.FileDescriptorSet().GetFile()[1:],
	}

	_, err := NewRegistryFromSet(set)
	require.Error(t, err)
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg, err := NewRegistryFromSet(testschema.FixtureFileOnly())
	require.NoError(t, err)

	_, err = reg.Resolve("other.Envelope")
	require.ErrorIs(t, err, UnknownTypeError{Name: "other.Envelope"})
	require.Empty(t, reg.MessagesOf(testschema.OtherFile))
}

func TestRegistryFromSetKeepsInputUntouched(t *testing.T) {
	set := testschema.FileDescriptorSet()
	before := proto.Clone(set)

	_, err := NewRegistryFromSet(set)
	require.NoError(t, err)
	require.True(t, proto.Equal(before, set))
}
