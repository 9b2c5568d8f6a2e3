// Package testschema provides descriptor fixtures for tests. The descriptors are
// built in code, so the tests do not need protoc.
//
// fixture.proto:
//
//	syntax = "proto3";
//	package fixture;
//
//	message MessageFixture {
//	  int32 number = 1;
//	  string text = 2;
//	  repeated int32 repeated_number = 3;
//	  Nested msg = 4;
//
//	  message Nested {
//	    int32 foo = 1;
//	  }
//	}
//
//	message Empty {}
//
//	message Scalars {
//	  int32 i32 = 1;
//	  int64 i64 = 2;
//	  uint32 u32 = 3;
//	  uint64 u64 = 4;
//	  float f32 = 5;
//	  double f64 = 6;
//	  bool flag = 7;
//	  string name = 8;
//	  sint32 s32 = 9;
//	  fixed64 fx64 = 10;
//	}
//
//	message Tree {
//	  string name = 1;
//	  repeated Tree children = 2;
//	}
//
//	message Ping {
//	  int32 seq = 1;
//	  repeated Pong pongs = 2;
//	}
//
//	message Pong {
//	  int32 seq = 1;
//	  repeated Ping pings = 2;
//	}
//
//	enum Color {
//	  COLOR_UNSPECIFIED = 0;
//	  COLOR_RED = 1;
//	}
//
//	message WithMap { map<string, int32> labels = 1; }
//	message WithEnum { Color color = 1; }
//	message WithBytes { bytes data = 1; }
//	message WithRepeatedEnum { repeated Color colors = 1; }
//
//	message Mixed {
//	  int32 id = 1;
//	  repeated int32 values = 2;
//	  bytes data = 3;
//	}
//
// other.proto:
//
//	syntax = "proto3";
//	package other;
//	import "fixture.proto";
//
//	message Envelope {
//	  string id = 1;
//	  fixture.MessageFixture.Nested nested = 2;
//	}
package testschema

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	FixtureFile = "fixture.proto"
	OtherFile   = "other.proto"
)

type (
	fieldType  = descriptorpb.FieldDescriptorProto_Type
	fieldLabel = descriptorpb.FieldDescriptorProto_Label
)

const (
	optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
)

// FileDescriptorSet returns a fresh copy of the fixture descriptor set.
func FileDescriptorSet() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{fixtureFile(), otherFile()},
	}
}

// FixtureFileOnly returns a descriptor set holding only fixture.proto.
func FixtureFileOnly() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{fixtureFile()},
	}
}

// Bytes returns the serialized fixture descriptor set, as protoc would write it
// with --descriptor_set_out.
func Bytes() []byte {
	data, err := proto.Marshal(FileDescriptorSet())
	if err != nil {
		panic(err)
	}

	return data
}

func fixtureFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FixtureFile),
		Package: proto.String("fixture"),
		Syntax:  proto.String("proto3"),

		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("MessageFixture"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("number", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
					newField("text", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
					newField("repeated_number", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32, repeated, ""),
					newField("msg", 4, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, optional, ".fixture.MessageFixture.Nested"),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Nested"),
						Field: []*descriptorpb.FieldDescriptorProto{
							newField("foo", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
						},
					},
				},
			},
			{
				Name: proto.String("Empty"),
			},
			{
				Name: proto.String("Scalars"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("i32", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
					newField("i64", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64, optional, ""),
					newField("u32", 3, descriptorpb.FieldDescriptorProto_TYPE_UINT32, optional, ""),
					newField("u64", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT64, optional, ""),
					newField("f32", 5, descriptorpb.FieldDescriptorProto_TYPE_FLOAT, optional, ""),
					newField("f64", 6, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, optional, ""),
					newField("flag", 7, descriptorpb.FieldDescriptorProto_TYPE_BOOL, optional, ""),
					newField("name", 8, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
					newField("s32", 9, descriptorpb.FieldDescriptorProto_TYPE_SINT32, optional, ""),
					newField("fx64", 10, descriptorpb.FieldDescriptorProto_TYPE_FIXED64, optional, ""),
				},
			},
			{
				Name: proto.String("Tree"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
					newField("children", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, repeated, ".fixture.Tree"),
				},
			},
			{
				Name: proto.String("Ping"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("seq", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
					newField("pongs", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, repeated, ".fixture.Pong"),
				},
			},
			{
				Name: proto.String("Pong"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("seq", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
					newField("pings", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, repeated, ".fixture.Ping"),
				},
			},
			{
				Name: proto.String("WithMap"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("labels", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, repeated, ".fixture.WithMap.LabelsEntry"),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("LabelsEntry"),
						Field: []*descriptorpb.FieldDescriptorProto{
							newField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
							newField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
						},
						Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
					},
				},
			},
			{
				Name: proto.String("WithEnum"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("color", 1, descriptorpb.FieldDescriptorProto_TYPE_ENUM, optional, ".fixture.Color"),
				},
			},
			{
				Name: proto.String("WithBytes"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("data", 1, descriptorpb.FieldDescriptorProto_TYPE_BYTES, optional, ""),
				},
			},
			{
				Name: proto.String("WithRepeatedEnum"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("colors", 1, descriptorpb.FieldDescriptorProto_TYPE_ENUM, repeated, ".fixture.Color"),
				},
			},
			{
				Name: proto.String("Mixed"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
					newField("values", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32, repeated, ""),
					newField("data", 3, descriptorpb.FieldDescriptorProto_TYPE_BYTES, optional, ""),
				},
			},
		},

		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("Color"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: proto.String("COLOR_UNSPECIFIED"), Number: proto.Int32(0)},
					{Name: proto.String("COLOR_RED"), Number: proto.Int32(1)},
				},
			},
		},
	}
}

func otherFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(OtherFile),
		Package:    proto.String("other"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{FixtureFile},

		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Envelope"),
				Field: []*descriptorpb.FieldDescriptorProto{
					newField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
					newField("nested", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, optional, ".fixture.MessageFixture.Nested"),
				},
			},
		},
	}
}

func newField(name string, number int32, ty fieldType, label fieldLabel, typeName string) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   ty.Enum(),
		Label:  label.Enum(),
	}

	if typeName != "" {
		fd.TypeName = proto.String(typeName)
	}

	return fd
}
