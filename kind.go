package dynmsg

import "google.golang.org/protobuf/reflect/protoreflect"

// FieldKind is the closed set of field kinds the decoder knows about. Protobuf wire
// encodings of the same value type collapse into one kind, e.g. sint32 and sfixed32
// are both KindInt32.
type FieldKind int

const (
	KindInvalid FieldKind = iota

	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindFloat
	KindDouble
	KindBool
	KindString

	// KindMessage is a reference to another message type
	KindMessage

	// recognized, but not decodable
	KindEnum
	KindBytes
	KindMap
)

func (k FieldKind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	case KindBytes:
		return "bytes"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Supported reports whether the decoder can produce values of this kind.
func (k FieldKind) Supported() bool {
	return k >= KindInt32 && k <= KindMessage
}

// KindOf classifies a field descriptor. Map fields are KindMap regardless of their
// key and value types.
func KindOf(fd protoreflect.FieldDescriptor) FieldKind {
	if fd.IsMap() {
		return KindMap
	}

	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return KindInt32
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return KindInt64
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return KindUint32
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return KindUint64
	case protoreflect.FloatKind:
		return KindFloat
	case protoreflect.DoubleKind:
		return KindDouble
	case protoreflect.BoolKind:
		return KindBool
	case protoreflect.StringKind:
		return KindString
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return KindMessage
	case protoreflect.EnumKind:
		return KindEnum
	case protoreflect.BytesKind:
		return KindBytes
	default:
		return KindInvalid
	}
}
