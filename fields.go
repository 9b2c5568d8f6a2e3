package dynmsg

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

type field struct {
	// Name is the key the field is looked up by in an object
	Name string
	Kind FieldKind
	Desc protoreflect.FieldDescriptor
}

// fieldsToDecode returns the fields of a message in declaration order.
func fieldsToDecode(md protoreflect.MessageDescriptor, jsonNames bool) []field {
	fds := md.Fields()

	fields := make([]field, 0, fds.Len())
	for idx := range fds.Len() {
		fd := fds.Get(idx)

		fields = append(fields, field{
			Name: nameOf(fd, jsonNames),
			Kind: KindOf(fd),
			Desc: fd,
		})
	}

	return fields
}

func nameOf(fd protoreflect.FieldDescriptor, jsonNames bool) string {
	if jsonNames {
		// defaults to lowerCamelCase of the name if not explicitly set
		return fd.JSONName()
	}

	return string(fd.Name())
}

// FieldInfo describes a single field of a message the way the decoder sees it.
type FieldInfo struct {
	Name     string
	JSONName string
	Kind     FieldKind

	// ProtoType is the type as declared in the schema, e.g. "TYPE_SINT32"
	ProtoType string

	// TypeName is the fully qualified name of a referenced message or enum.
	// It is empty for scalar fields.
	TypeName string

	Repeated bool
	Map      bool
}

// Supported reports whether the field can be decoded.
func (f FieldInfo) Supported() bool {
	return f.Kind.Supported()
}

func (f FieldInfo) String() string {
	return fmt.Sprintf("%q: %s %q (repeated=%t, map=%t)", f.Name, f.ProtoType, f.TypeName, f.Repeated, f.Map)
}

// Describe lists the fields of a message in declaration order.
func Describe(md protoreflect.MessageDescriptor) []FieldInfo {
	fds := md.Fields()

	infos := make([]FieldInfo, 0, fds.Len())
	for idx := range fds.Len() {
		fd := fds.Get(idx)

		info := FieldInfo{
			Name:      string(fd.Name()),
			JSONName:  fd.JSONName(),
			Kind:      KindOf(fd),
			ProtoType: protoTypeOf(fd),
			Repeated:  fd.Cardinality() == protoreflect.Repeated,
			Map:       fd.IsMap(),
		}

		switch {
		case fd.Message() != nil:
			info.TypeName = "." + string(fd.Message().FullName())
		case fd.Enum() != nil:
			info.TypeName = "." + string(fd.Enum().FullName())
		}

		infos = append(infos, info)
	}

	return infos
}

func protoTypeOf(fd protoreflect.FieldDescriptor) string {
	ty := descriptorpb.FieldDescriptorProto_Type(fd.Kind())
	if name, ok := descriptorpb.FieldDescriptorProto_Type_name[int32(ty)]; ok {
		return name
	}

	return "TYPE_" + strings.ToUpper(fd.Kind().String())
}
